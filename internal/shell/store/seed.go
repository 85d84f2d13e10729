package store

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/gardenhq/gardenapi/internal/core/auth"
	"github.com/gardenhq/gardenapi/internal/core/domain"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFixture struct {
	Users []struct {
		Username string `yaml:"user_name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		IsAdmin  bool   `yaml:"is_admin"`
	} `yaml:"users"`
	Gardens []struct {
		Name        string `yaml:"garden_name"`
		Description string `yaml:"description"`
		Owner       string `yaml:"owner"`
	} `yaml:"gardens"`
	Plants []struct {
		Name       string `yaml:"plant_name"`
		Genus      string `yaml:"genus"`
		Watering   string `yaml:"watering"`
		GrowthRate string `yaml:"growth_rate"`
	} `yaml:"plants"`
	GardenPlants []struct {
		Garden   string `yaml:"garden"`
		Plant    string `yaml:"plant"`
		Color    string `yaml:"color"`
		Position string `yaml:"position"`
		Size     string `yaml:"size"`
	} `yaml:"garden_plants"`
	Comments []struct {
		Garden  string `yaml:"garden"`
		Author  string `yaml:"author"`
		Message string `yaml:"message"`
	} `yaml:"comments"`
}

// Seed populates the store with the embedded starter dataset. It is
// idempotent: if any users already exist the seed is skipped entirely.
func Seed(ctx context.Context, s Store) error {
	existing, err := s.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	var fixture seedFixture
	if err := yaml.Unmarshal(seedYAML, &fixture); err != nil {
		return fmt.Errorf("failed to parse seed fixture: %w", err)
	}

	today := domain.DateOnly(time.Now())

	return s.WithTx(ctx, func(tx Store) error {
		usersByName := make(map[string]*domain.User, len(fixture.Users))
		for _, u := range fixture.Users {
			hash, err := auth.HashPassword(u.Password)
			if err != nil {
				return fmt.Errorf("failed to hash seed password for %s: %w", u.Username, err)
			}
			user := &domain.User{
				Username:     u.Username,
				Email:        u.Email,
				PasswordHash: hash,
				IsAdmin:      u.IsAdmin,
			}
			if err := tx.CreateUser(ctx, user); err != nil {
				return err
			}
			usersByName[user.Username] = user
		}

		gardensByName := make(map[string]*domain.Garden, len(fixture.Gardens))
		for _, g := range fixture.Gardens {
			owner, ok := usersByName[g.Owner]
			if !ok {
				return fmt.Errorf("seed garden %q references unknown owner %q", g.Name, g.Owner)
			}
			garden := &domain.Garden{
				Name:         g.Name,
				Description:  g.Description,
				CreationDate: today,
				UserID:       owner.ID,
			}
			if err := tx.CreateGarden(ctx, garden); err != nil {
				return err
			}
			gardensByName[garden.Name] = garden
		}

		plantsByName := make(map[string]*domain.Plant, len(fixture.Plants))
		for _, p := range fixture.Plants {
			plant := &domain.Plant{
				Name:       p.Name,
				Genus:      p.Genus,
				Watering:   domain.Watering(p.Watering),
				GrowthRate: domain.GrowthRate(p.GrowthRate),
			}
			if err := tx.CreatePlant(ctx, plant); err != nil {
				return err
			}
			plantsByName[plant.Name] = plant
		}

		for _, gp := range fixture.GardenPlants {
			garden, ok := gardensByName[gp.Garden]
			if !ok {
				return fmt.Errorf("seed placement references unknown garden %q", gp.Garden)
			}
			plant, ok := plantsByName[gp.Plant]
			if !ok {
				return fmt.Errorf("seed placement references unknown plant %q", gp.Plant)
			}
			placement := &domain.GardenPlant{
				Color:    domain.Color(gp.Color),
				Position: domain.Position(gp.Position),
				Size:     domain.Size(gp.Size),
				GardenID: garden.ID,
				PlantID:  plant.ID,
			}
			if err := tx.CreateGardenPlant(ctx, placement); err != nil {
				return err
			}
		}

		for _, c := range fixture.Comments {
			garden, ok := gardensByName[c.Garden]
			if !ok {
				return fmt.Errorf("seed comment references unknown garden %q", c.Garden)
			}
			author, ok := usersByName[c.Author]
			if !ok {
				return fmt.Errorf("seed comment references unknown author %q", c.Author)
			}
			comment := &domain.Comment{
				Message:     c.Message,
				CommentDate: today,
				UserID:      author.ID,
				GardenID:    garden.ID,
			}
			if err := tx.CreateComment(ctx, comment); err != nil {
				return err
			}
		}

		return nil
	})
}
