package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/config"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/entity"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/enum"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/utils"
	"go.uber.org/zap"
)

// SeedRepositories are the stores seeded on startup. Both the postgres and
// the in-memory backends provide them.
type SeedRepositories struct {
	Menu     repository.MenuRepository
	TaxRates repository.TaxRateRepository
	Users    repository.UserRepository
}

// SeedDefaultData seeds tax rates, a starter menu and the admin account.
// Existing rows are left alone, so it is safe to run on every start.
func SeedDefaultData(ctx context.Context, repos SeedRepositories, admin config.AdminConfig, log *zap.Logger) error {
	log.Info("seeding default data")

	if err := seedTaxRates(ctx, repos.TaxRates, log); err != nil {
		return err
	}
	if err := seedMenu(ctx, repos.Menu, log); err != nil {
		return err
	}
	if err := seedAdmin(ctx, repos.Users, admin, log); err != nil {
		return err
	}

	log.Info("default data seeding completed")
	return nil
}

func seedTaxRates(ctx context.Context, repo repository.TaxRateRepository, log *zap.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list tax rates: %w", err)
	}
	have := make(map[enum.Service]bool, len(existing))
	for _, r := range existing {
		have[r.Service] = true
	}

	for _, rate := range entity.DefaultTaxRates() {
		if have[rate.Service] {
			continue
		}
		if err := repo.Upsert(ctx, &rate); err != nil {
			return fmt.Errorf("seed tax rate for %s: %w", rate.Service, err)
		}
		log.Debug("seeded tax rate", zap.Stringer("service", rate.Service), zap.Float64("percent", rate.Percent))
	}
	return nil
}

func shot(p int64) *int64 { return &p }

var starterMenu = []entity.MenuItem{
	{Service: enum.ServiceBakery, Name: "Plum Cake", Price: 250},
	{Service: enum.ServiceBakery, Name: "Butter Croissant", Price: 90},
	{Service: enum.ServiceBar, Name: "Draught Beer", Price: 300},
	{Service: enum.ServiceBar, Name: "Old Monk", Price: 1500, ShotPrice: shot(120)},
	{Service: enum.ServiceJuice, Name: "Fresh Lime Soda", Price: 60},
	{Service: enum.ServiceJuice, Name: "Watermelon Juice", Price: 80},
	{Service: enum.ServiceRestaurant, Name: "Kerala Meals", Price: 220},
	{Service: enum.ServiceRestaurant, Name: "Appam with Stew", Price: 180},
	{Service: enum.ServiceRoomService, Name: "Masala Chai", Price: 40},
	{Service: enum.ServiceRoomService, Name: "Club Sandwich", Price: 210},
	{Service: enum.ServiceSpa, Name: "Abhyanga Massage", Price: 2500},
}

// seedMenu adds the starter menu to services that have no items yet
func seedMenu(ctx context.Context, repo repository.MenuRepository, log *zap.Logger) error {
	empty := make(map[enum.Service]bool)
	for _, s := range enum.AllServices() {
		items, err := repo.ListByService(ctx, s)
		if err != nil {
			return fmt.Errorf("list menu for %s: %w", s, err)
		}
		empty[s] = len(items) == 0
	}

	seeded := 0
	for _, item := range starterMenu {
		if !empty[item.Service] {
			continue
		}
		item.Available = true
		if err := repo.Create(ctx, &item); err != nil {
			return fmt.Errorf("seed menu item %q: %w", item.Name, err)
		}
		seeded++
	}
	if seeded > 0 {
		log.Info("seeded starter menu", zap.Int("items", seeded))
	}
	return nil
}

func seedAdmin(ctx context.Context, repo repository.UserRepository, admin config.AdminConfig, log *zap.Logger) error {
	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if email == "" || admin.Password == "" {
		return nil
	}

	existing, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("look up admin: %w", err)
	}
	if existing != nil {
		log.Debug("admin user already exists", zap.String("email", email))
		return nil
	}

	hashed, err := utils.HashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	name := admin.Name
	if name == "" {
		name = "Manager"
	}
	user := &entity.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     entity.RoleManager,
		Active:   true,
	}
	if err := repo.Create(ctx, user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	log.Info("admin user created", zap.String("email", email))
	return nil
}
