package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"bookery/internal/database"
	"bookery/internal/models"

	"github.com/rs/zerolog"
)

// Deterministic demo dataset for local development: a handful of users
// and services, plus a year of bookings in every lifecycle status.
func main() {
	dbPath := flag.String("db", "data/bookery.db", "path to the sqlite database")
	bookingCount := flag.Int("bookings", 200, "number of bookings to generate")
	flag.Parse()

	logger := zerolog.Nop()
	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	users, err := seedUsers(ctx, db)
	if err != nil {
		log.Fatalf("seed users: %v", err)
	}
	services, err := seedServices(ctx, db)
	if err != nil {
		log.Fatalf("seed services: %v", err)
	}
	created, err := seedBookings(ctx, db, rng, users, services, *bookingCount)
	if err != nil {
		log.Fatalf("seed bookings: %v", err)
	}

	fmt.Printf("seeded %d users, %d services, %d bookings into %s\n",
		len(users), len(services), created, *dbPath)
}

func seedUsers(ctx context.Context, db *database.DB) ([]*models.User, error) {
	users := []*models.User{
		{Email: "alice@example.com", Username: "alice", FullName: "Alice Novak", Phone: "+10000000001", IsActive: true},
		{Email: "bob@example.com", Username: "bob", FullName: "Bob Ferris", Phone: "+10000000002", IsActive: true},
		{Email: "carol@example.com", Username: "carol", FullName: "Carol Iwu", IsActive: true},
		{Email: "dave@example.com", Username: "dave", FullName: "Dave Lindqvist", IsActive: false},
		{Email: "erin@example.com", Username: "erin", FullName: "Erin Sato", IsActive: true},
	}
	for _, u := range users {
		if err := db.CreateUser(ctx, u); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func seedServices(ctx context.Context, db *database.DB) ([]*models.Service, error) {
	services := []*models.Service{
		{Name: "Deep Tissue Massage", Description: "60 minute full body session", Price: 85, DurationMinutes: 60, Category: "wellness", IsAvailable: true},
		{Name: "Haircut", Description: "Wash, cut and style", Price: 40, DurationMinutes: 45, Category: "beauty", IsAvailable: true},
		{Name: "Personal Training", Description: "One on one gym session", Price: 60, DurationMinutes: 60, Category: "fitness", IsAvailable: true},
		{Name: "Tax Consultation", Description: "Annual filing review", Price: 150, DurationMinutes: 90, Category: "finance", IsAvailable: true},
		{Name: "Piano Lesson", Description: "Beginner friendly", Price: 50, DurationMinutes: 45, Category: "education", IsAvailable: false},
	}
	for _, s := range services {
		if err := db.CreateService(ctx, s); err != nil {
			return nil, err
		}
	}
	return services, nil
}

func seedBookings(
	ctx context.Context,
	db *database.DB,
	rng *rand.Rand,
	users []*models.User,
	services []*models.Service,
	count int,
) (int, error) {
	statuses := []string{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusCancelled,
		models.StatusCompleted,
		models.StatusCompleted,
	}

	created := 0
	now := time.Now().UTC()
	for i := 0; i < count; i++ {
		user := users[rng.Intn(len(users))]
		svc := services[rng.Intn(len(services))]

		// Spread bookings over the trailing year so the monthly
		// trend report has data in every bucket.
		daysBack := rng.Intn(365)
		hour := 9 + rng.Intn(9)
		day := now.AddDate(0, 0, -daysBack)
		start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
		end := start.Add(time.Duration(svc.DurationMinutes) * time.Minute)

		booking := &models.Booking{
			UserID:      user.ID,
			ServiceID:   svc.ID,
			BookingDate: start,
			StartTime:   start,
			EndTime:     end,
			Status:      models.StatusPending,
			TotalPrice:  svc.Price,
		}
		if err := db.CreateBooking(ctx, booking); err != nil {
			return created, err
		}

		status := statuses[rng.Intn(len(statuses))]
		if status != models.StatusPending {
			if err := db.UpdateBookingStatus(ctx, booking.ID, status); err != nil {
				return created, err
			}
		}
		created++
	}
	return created, nil
}
