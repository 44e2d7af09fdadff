package db

import (
	"github.com/patriotthanks/patriotthanks-backend/internal/app/model"
	"github.com/patriotthanks/patriotthanks-backend/pkg/logger"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.User{},
		&model.UsState{},
		&model.Address{},
		&model.BusinessType{},
		&model.Business{},
		&model.BusinessLocation{},
		&model.IncentiveType{},
		&model.Incentive{},
		&model.BusinessIncentiveType{},
		&model.School{},
		&model.SchoolLocation{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := seedLookupData(); err != nil {
		logger.Error("Failed to seed lookup data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// Seed adds the lookup data the forms depend on (idempotent)
func Seed() error {
	return seedLookupData()
}

func seedLookupData() error {
	logger.Info("Seeding lookup data...")

	if err := seedBusinessTypes(); err != nil {
		logger.Error("Failed to seed business types", err)
		return err
	}
	if err := seedIncentiveTypes(); err != nil {
		logger.Error("Failed to seed incentive types", err)
		return err
	}
	if err := seedStates(); err != nil {
		logger.Error("Failed to seed US states", err)
		return err
	}

	logger.Info("Lookup data seeded successfully")
	return nil
}

func seedBusinessTypes() error {
	var count int64
	if err := DB.Model(&model.BusinessType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Business types already seeded, skipping", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	types := []model.BusinessType{
		{Name: "Automotive", DisplayOrder: 1, IsActive: true},
		{Name: "Entertainment", DisplayOrder: 2, IsActive: true},
		{Name: "Hardware", DisplayOrder: 3, IsActive: true},
		{Name: "Pharmacy", DisplayOrder: 4, IsActive: true},
		{Name: "Restaurant", DisplayOrder: 5, IsActive: true},
		{Name: "Retail", DisplayOrder: 6, IsActive: true},
		{Name: "Technology", DisplayOrder: 7, IsActive: true},
		{Name: "Other", DisplayOrder: 8, IsActive: true},
	}
	return DB.Create(&types).Error
}

func seedIncentiveTypes() error {
	var count int64
	if err := DB.Model(&model.IncentiveType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Incentive types already seeded, skipping", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	types := []model.IncentiveType{
		{Name: "Veteran", Description: "Veterans of any service branch", DisplayOrder: 1, IsActive: true},
		{Name: "Active Duty", Description: "Currently serving military members", DisplayOrder: 2, IsActive: true},
		{Name: "First Responder", Description: "Police, fire, and EMS personnel", DisplayOrder: 3, IsActive: true},
		{Name: "Spouse", Description: "Spouses of qualifying members", DisplayOrder: 4, IsActive: true},
		{Name: "Family", Description: "Immediate family of qualifying members", DisplayOrder: 5, IsActive: true},
	}
	return DB.Create(&types).Error
}

func seedStates() error {
	var count int64
	if err := DB.Model(&model.UsState{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("US states already seeded, skipping", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	codes := map[string]string{
		"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
		"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
		"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
		"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
		"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
		"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
		"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
		"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
		"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
		"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
		"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
		"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
		"WI": "Wisconsin", "WY": "Wyoming", "DC": "District of Columbia",
	}

	states := make([]model.UsState, 0, len(codes))
	for code, name := range codes {
		states = append(states, model.UsState{Code: code, Name: name})
	}
	return DB.Create(&states).Error
}
