package main

import (
	"context"
	"fmt"

	"grantflow/internal/db"
	"grantflow/internal/store"
	"grantflow/internal/utils"
	"grantflow/pkg/types"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with demo data",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		ministryRepo := store.NewMinistryRepository(pool)
		donorRepo := store.NewDonorRepository(pool)
		fundRepo := store.NewFundRepository(pool)

		ministries := []*types.Ministry{
			{
				Name:     "Grace Community Church",
				EIN:      utils.StringPtr("12-3456789"),
				Category: types.MinistryCategoryChurch,
				City:     utils.StringPtr("Springfield"),
				State:    utils.StringPtr("MO"),
			},
			{
				Name:     "Hope Missions International",
				EIN:      utils.StringPtr("98-7654321"),
				Category: types.MinistryCategoryMissions,
				Mission:  utils.StringPtr("Clean water and church planting in East Africa"),
			},
			{
				Name:     "Lighthouse Youth Outreach",
				Category: types.MinistryCategoryYouth,
				City:     utils.StringPtr("Tulsa"),
				State:    utils.StringPtr("OK"),
			},
		}

		for _, ministry := range ministries {
			if err := ministryRepo.CreateMinistry(ctx, ministry); err != nil {
				return fmt.Errorf("failed to seed ministry %q: %w", ministry.Name, err)
			}

			if _, err := ministryRepo.VerifyMinistry(ctx, ministry.ID); err != nil {
				return fmt.Errorf("failed to verify ministry %q: %w", ministry.Name, err)
			}
		}

		donor := &types.Donor{
			Name:  "Dorothy Kindler",
			Email: "dorothy.kindler@example.com",
		}
		if err := donorRepo.CreateDonor(ctx, donor); err != nil {
			return fmt.Errorf("failed to seed donor: %w", err)
		}

		fund := &types.GivingFund{
			DonorID:     donor.ID,
			Name:        "Kindler Family Giving Fund",
			Description: utils.StringPtr("General charitable giving"),
			Balance:     types.MoneyFromInt(50000),
		}
		if err := fundRepo.CreateFund(ctx, fund); err != nil {
			return fmt.Errorf("failed to seed fund: %w", err)
		}

		pp.Println(ministries)
		pp.Println(donor, fund)

		logrus.Info("Seed data created successfully")

		return nil
	},
}
