package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"shiftwise/config"
	"shiftwise/database"
	"shiftwise/models"
	"shiftwise/schedule"
	"shiftwise/utils"

	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo restaurant with a fortnight of shifts so the calendar and
// report endpoints have something to render. Wipes the configured database
// first; never point this at production data.
func main() {
	config.LoadConfig()
	database.InitDB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Clear existing roster data.
	for _, name := range []string{"companies", "workers", "registrations", "shifts", "shift_day_locks", "availability"} {
		if _, err := database.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", name, err)
		}
	}

	now := time.Now()
	code, err := utils.GenerateJoinCode()
	if err != nil {
		log.Fatalf("Failed to generate join code: %v", err)
	}

	company := models.Company{
		ID:           "demo-osteria",
		Name:         "Osteria Demo",
		Code:         code,
		Address:      "12 Harbour Lane",
		Phone:        "555-0100",
		Email:        "front@osteria-demo.example.com",
		CuisineType:  "italian",
		MaxEmployees: 25,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := database.Collection("companies").InsertOne(ctx, company); err != nil {
		log.Fatalf("Failed to insert demo company: %v", err)
	}

	// One shared password for every demo account.
	pass := "Osteria2026"
	hashed, err := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	type staffSeed struct {
		first, last, function string
	}
	seeds := []staffSeed{
		{"Marta", "Ricci", models.FunctionManager}, // owner
		{"Ana", "Moraes", models.FunctionServer},
		{"Luca", "Bianchi", models.FunctionServer},
		{"Ben", "Okafor", models.FunctionBartender},
		{"Sofia", "Petrov", models.FunctionKitchen},
		{"Tomas", "Silva", models.FunctionHost},
	}

	var workers []interface{}
	var staff []models.Worker
	for i, s := range seeds {
		username := strings.ToLower(s.first + "." + s.last)
		w := models.Worker{
			ID:             fmt.Sprintf("w-%d", i+1),
			CompanyID:      company.ID,
			Username:       username,
			Email:          username + "@osteria-demo.example.com",
			FirstName:      s.first,
			LastName:       s.last,
			Phone:          fmt.Sprintf("555-01%02d", i+1),
			Function:       s.function,
			Role:           models.RoleForFunction(s.function),
			EmployeeNumber: fmt.Sprintf("%s-%04d", company.Code, i+1),
			PasswordHash:   string(hashed),
			Approved:       true,
			Active:         true,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if i == 0 {
			w.Role = models.RoleOwner
		}
		workers = append(workers, w)
		staff = append(staff, w)
	}
	if _, err := database.Collection("workers").InsertMany(ctx, workers); err != nil {
		log.Fatalf("Failed to insert demo workers: %v", err)
	}

	owner, serverA, serverB := staff[0], staff[1], staff[2]
	bartender, kitchen, host := staff[3], staff[4], staff[5]

	// Two weeks of shifts starting from this week's Monday.
	offset := (int(now.Weekday()) + 6) % 7
	monday := now.AddDate(0, 0, -offset)

	var shifts []interface{}
	shiftCounter := 1
	addShift := func(w models.Worker, date string, r models.TimeRange) {
		shifts = append(shifts, models.Shift{
			ID:        fmt.Sprintf("s-%d", shiftCounter),
			CompanyID: company.ID,
			WorkerID:  w.ID,
			Date:      date,
			Range:     r,
			Function:  w.Function,
			CreatedBy: owner.ID,
			CreatedAt: now,
			UpdatedAt: now,
		})
		shiftCounter++
	}

	for i := 0; i < 14; i++ {
		day := monday.AddDate(0, 0, i)
		date := day.Format(schedule.DateLayout)
		weekend := day.Weekday() == time.Friday || day.Weekday() == time.Saturday

		// Kitchen runs every day; the two servers alternate lunch and dinner.
		addShift(kitchen, date, models.BoundedRange(10*60, 18*60))
		lunch, dinner := serverA, serverB
		if i%2 == 1 {
			lunch, dinner = serverB, serverA
		}
		addShift(lunch, date, models.BoundedRange(11*60, 17*60))
		addShift(dinner, date, models.BoundedRange(17*60, 23*60))

		// The bar closes with the restaurant on busy nights, so those
		// shifts are seeded open-ended. Mondays the bar stays shut.
		if day.Weekday() != time.Monday {
			if weekend {
				addShift(bartender, date, models.OpenRange(16*60))
			} else {
				addShift(bartender, date, models.BoundedRange(16*60, 22*60))
			}
		}
		if weekend || day.Weekday() == time.Sunday {
			addShift(host, date, models.BoundedRange(17*60, 22*60))
		}
	}
	if _, err := database.Collection("shifts").InsertMany(ctx, shifts); err != nil {
		log.Fatalf("Failed to insert demo shifts: %v", err)
	}

	// A couple of availability declarations so the week view shows all
	// three states.
	firstSaturday := monday.AddDate(0, 0, 5).Format(schedule.DateLayout)
	firstSunday := monday.AddDate(0, 0, 6).Format(schedule.DateLayout)
	records := []interface{}{
		models.AvailabilityRecord{
			ID:        "av-1",
			CompanyID: company.ID,
			WorkerID:  serverB.ID,
			Date:      firstSunday,
			Status:    schedule.StatusUnavailable,
			Note:      "family dinner",
			CreatedAt: now,
			UpdatedAt: now,
		},
		models.AvailabilityRecord{
			ID:        "av-2",
			CompanyID: company.ID,
			WorkerID:  bartender.ID,
			Date:      firstSaturday,
			Status:    schedule.StatusAvailable,
			Note:      "can close",
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if _, err := database.Collection("availability").InsertMany(ctx, records); err != nil {
		log.Fatalf("Failed to insert demo availability: %v", err)
	}

	fmt.Printf("Seeded company %q (join code %s) with %d workers, %d shifts, %d availability records\n",
		company.Name, company.Code, len(workers), len(shifts), len(records))
	fmt.Printf("Sign in with %s / %s\n", owner.Email, pass)
}
