package store

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/IshaanVijayPuniya/Camel-Care/internal/models"
)

func floatPtr(f float64) *float64 { return &f }

// Seed populates an empty store with one user per role, a profile each,
// four listings spanning categories, one event and one message.
//
// The seeder is not idempotent: it bypasses the registration path and
// will happily insert duplicates. Callers must gate it on
// CountUsers == 0 (cmd/server does).
func (s *PostgresStore) Seed(ctx context.Context) error {
	sample := []struct {
		username, email, password string
		role                      models.Role
	}{
		{"farmer1", "farmer1@example.com", "farmerpass", models.RoleFarmer},
		{"producer1", "producer1@example.com", "producerpass", models.RoleProducer},
		{"consumer1", "consumer1@example.com", "consumerpass", models.RoleConsumer},
		{"research1", "research1@example.com", "researchpass", models.RoleResearcher},
		{"vet1", "vet1@example.com", "vetpass", models.RoleVet},
		{"trans1", "trans1@example.com", "transpass", models.RoleTransporter},
		{"ent1", "ent1@example.com", "entpass", models.RoleEntrepreneur},
		{"gov1", "gov1@example.com", "govpass", models.RoleGov},
	}

	users := make([]*models.User, 0, len(sample))
	for _, su := range sample {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed hash: %w", err)
		}
		u, err := s.CreateUser(ctx, su.username, su.email, string(hash), su.role)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", su.username, err)
		}
		if err := s.CreateProfile(ctx, &models.Profile{
			UserID:   u.ID,
			FullName: su.username,
			Phone:    "N/A",
			Location: "Rajasthan",
			Bio:      fmt.Sprintf("Role: %s", su.role),
		}); err != nil {
			return fmt.Errorf("seed profile %s: %w", su.username, err)
		}
		users = append(users, u)
	}

	listings := []models.Listing{
		{
			Title:       "Raw camel milk - weekly supply (50 L)",
			Description: "High-quality raw camel milk from free-range camels. Good for research and consumers.",
			OwnerID:     users[0].ID, Category: "milk",
			Price: floatPtr(1.5), Quantity: "50 L/week", Location: "Bikaner, Rajasthan",
		},
		{
			Title:       "Pasteurized camel milk - 10L packs",
			Description: "Hygienically pasteurized and packaged. Certified for sale.",
			OwnerID:     users[1].ID, Category: "milk",
			Price: floatPtr(2.0), Quantity: "10 L packs", Location: "Jaisalmer",
		},
		{
			Title:       "Transport service for milk (cold chain)",
			Description: "Refrigerated transport available across districts.",
			OwnerID:     users[5].ID, Category: "transport",
			Price: floatPtr(0.5), Quantity: "per km", Location: "Rajasthan statewide",
		},
		{
			Title:       "Veterinary health check & vaccination",
			Description: "Experienced camel vet offering herd health checkups.",
			OwnerID:     users[4].ID, Category: "vet",
			Price: floatPtr(20.0), Quantity: "per visit", Location: "Rajasthan",
		},
	}
	for i := range listings {
		if err := s.CreateListing(ctx, &listings[i]); err != nil {
			return fmt.Errorf("seed listing: %w", err)
		}
	}

	if err := s.CreateEvent(ctx, &models.Event{
		Title:       "Camel Conservation Workshop",
		Description: "Field workshop on camel nutrition and conservation.",
		Date:        time.Now().UTC().Truncate(24 * time.Hour),
		OrganizerID: users[7].ID,
	}); err != nil {
		return fmt.Errorf("seed event: %w", err)
	}

	if err := s.CreateMessage(ctx, &models.Message{
		SenderID:   users[2].ID,
		ReceiverID: users[0].ID,
		Subject:    "Interested in weekly milk",
		Body:       "Hi, I'd like to buy 20L/week. Can we discuss?",
	}); err != nil {
		return fmt.Errorf("seed message: %w", err)
	}

	return nil
}
