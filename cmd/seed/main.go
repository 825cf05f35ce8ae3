package main

import (
	"log"
	"os"

	"primoboost-be/internal/entity"
	"primoboost-be/internal/model"
	"primoboost-be/pkg/database"

	"github.com/joho/godotenv"
)

type planSeed struct {
	plan model.SubscriptionPlan
	// Resume credit count shared by the credit-gated tools on this plan.
	credits int
}

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Subscription Plan Catalog...")

	plans := []planSeed{
		{plan: model.SubscriptionPlan{Name: "Leader Plan", Slug: "leader", Tagline: "100 Resume Credits", Price: 16400, DiscountPercent: 50, DurationDays: 365, IsActive: true, SortOrder: 1}, credits: 100},
		{plan: model.SubscriptionPlan{Name: "Achiever Plan", Slug: "achiever", Tagline: "50 Resume Credits", Price: 13200, DiscountPercent: 50, DurationDays: 365, IsMostPopular: true, IsActive: true, SortOrder: 2}, credits: 50},
		{plan: model.SubscriptionPlan{Name: "Accelerator Plan", Slug: "accelerator", Tagline: "25 Resume Credits", Price: 11600, DiscountPercent: 50, DurationDays: 365, IsActive: true, SortOrder: 3}, credits: 25},
		{plan: model.SubscriptionPlan{Name: "Starter Plan", Slug: "starter", Tagline: "10 Resume Credits", Price: 1640, DiscountPercent: 50, DurationDays: 365, IsActive: true, SortOrder: 4}, credits: 10},
		{plan: model.SubscriptionPlan{Name: "Kickstart Plan", Slug: "kickstart", Tagline: "5 Resume Credits", Price: 1320, DiscountPercent: 50, DurationDays: 365, IsActive: true, SortOrder: 5}, credits: 5},
	}

	for _, seed := range plans {
		// Check if a plan with this slug already exists
		var existing model.SubscriptionPlan
		if err := db.Where("slug = ?", seed.plan.Slug).First(&existing).Error; err == nil {
			log.Printf("Plan '%s' already exists, skipping...", seed.plan.Slug)
			continue
		}

		p := seed.plan
		if err := db.Create(&p).Error; err != nil {
			log.Printf("Error creating plan '%s': %v", p.Slug, err)
			continue
		}

		credits := []model.PlanCredit{
			{PlanId: p.Id, FeatureKey: entity.FeatureOptimizer, Total: seed.credits},
			{PlanId: p.Id, FeatureKey: entity.FeatureScoreChecker, Total: seed.credits},
		}
		if err := db.Create(&credits).Error; err != nil {
			log.Printf("Error creating credits for plan '%s': %v", p.Slug, err)
		} else {
			log.Printf("Created plan: %s (%s)", p.Name, p.Slug)
		}
	}

	log.Println("Plan seeding completed!")
}
