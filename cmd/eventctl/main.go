package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"photobooth/internal/adapter/repo"
	"photobooth/internal/domain"
)

// eventctl manages kiosk events from the command line, for operators who
// set up a booth before the admin UI is reachable.
//
//	eventctl -create -name "Summer Party" -slug summer-party -date 2026-07-01
//	eventctl -list
//	eventctl -deactivate -slug summer-party
func main() {
	var (
		createFlag     bool
		listFlag       bool
		deactivateFlag bool
		nameFlag       string
		slugFlag       string
		dateFlag       string
		themeFlag      string
		maxPhotosFlag  int
	)

	flag.BoolVar(&createFlag, "create", false, "create a new event")
	flag.BoolVar(&listFlag, "list", false, "list active events")
	flag.BoolVar(&deactivateFlag, "deactivate", false, "deactivate the event selected by -slug")
	flag.StringVar(&nameFlag, "name", "", "event name")
	flag.StringVar(&slugFlag, "slug", "", "event slug")
	flag.StringVar(&dateFlag, "date", "", "event date (YYYY-MM-DD)")
	flag.StringVar(&themeFlag, "theme", "default", "kiosk theme")
	flag.IntVar(&maxPhotosFlag, "max-photos", 0, "photo quota for the event (0 = unlimited)")
	flag.Parse()

	_ = godotenv.Load()

	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dbURL == "" {
		exitWithError(errors.New("DATABASE_URL is required"))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		exitWithError(fmt.Errorf("connect database: %w", err))
	}
	defer pool.Close()

	events := repo.NewEventRepository(pool)

	switch {
	case createFlag:
		err = runCreate(ctx, events, nameFlag, slugFlag, dateFlag, themeFlag, maxPhotosFlag)
	case listFlag:
		err = runList(ctx, events)
	case deactivateFlag:
		err = runDeactivate(ctx, events, slugFlag)
	default:
		err = errors.New("one of -create, -list, or -deactivate is required")
	}
	if err != nil {
		exitWithError(err)
	}
}

func runCreate(ctx context.Context, events *repo.EventRepositoryPG, name, slug, date, theme string, maxPhotos int) error {
	if name == "" || slug == "" || date == "" {
		return errors.New("-name, -slug, and -date are required")
	}
	eventDate, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("parse -date: %w", err)
	}

	event := &domain.Event{
		Name:     name,
		Slug:     slug,
		Date:     eventDate,
		IsActive: true,
		Theme:    theme,
	}
	if maxPhotos > 0 {
		event.MaxPhotos = &maxPhotos
	}
	if err := events.Create(ctx, event); err != nil {
		return err
	}
	fmt.Printf("created event %s (%s)\n", event.ID, event.Slug)
	return nil
}

func runList(ctx context.Context, events *repo.EventRepositoryPG) error {
	active, err := events.ListActive(ctx)
	if err != nil {
		return err
	}
	if len(active) == 0 {
		fmt.Println("no active events")
		return nil
	}
	for _, e := range active {
		quota := "unlimited"
		if e.MaxPhotos != nil {
			quota = fmt.Sprintf("%d photos", *e.MaxPhotos)
		}
		fmt.Printf("%s  %-24s %s  %s\n", e.ID, e.Slug, e.Date.Format("2006-01-02"), quota)
	}
	return nil
}

func runDeactivate(ctx context.Context, events *repo.EventRepositoryPG, slug string) error {
	if slug == "" {
		return errors.New("-slug is required")
	}
	event, err := events.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	event.IsActive = false
	if err := events.Update(ctx, event); err != nil {
		return err
	}
	fmt.Printf("deactivated event %s (%s)\n", event.ID, event.Slug)
	return nil
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "eventctl: %v\n", err)
	os.Exit(1)
}
