package scheduler

import (
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/color-game/palette-api/colormath"
	"github.com/color-game/palette-api/datastore"
	"github.com/color-game/palette-api/models"
	"github.com/color-game/palette-api/palette"
)

type Scheduler struct {
	DailyPaletteRepo datastore.DailyPaletteRepository
	Generator        *palette.Generator
	Rand             *rand.Rand
	Now              func() time.Time

	mu       sync.Mutex
	timer    *time.Timer
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

func NewScheduler(repo datastore.DailyPaletteRepository, generator *palette.Generator) *Scheduler {
	if generator == nil {
		generator = palette.NewGenerator(nil)
	}
	return &Scheduler{
		DailyPaletteRepo: repo,
		Generator:        generator,
		Now:              time.Now,
		done:             make(chan struct{}),
	}
}

// Start makes sure today's palette exists, then regenerates at every midnight
func (s *Scheduler) Start() {
	if _, err := s.EnsureToday(); err != nil {
		log.Printf("Error preparing today's palette: %v", err)
	}

	now := s.now()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())
	durationUntilMidnight := nextMidnight.Sub(now)

	log.Printf("Scheduler started. Next daily palette generation in %v", durationUntilMidnight)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.timer = time.AfterFunc(durationUntilMidnight, func() {
		if _, err := s.EnsureToday(); err != nil {
			log.Printf("Error generating daily palette: %v", err)
		}

		s.mu.Lock()
		s.ticker = time.NewTicker(24 * time.Hour)
		ticker := s.ticker
		s.mu.Unlock()

		go func() {
			for {
				select {
				case <-ticker.C:
					if _, err := s.EnsureToday(); err != nil {
						log.Printf("Error generating daily palette: %v", err)
					}
				case <-s.done:
					return
				}
			}
		}()
	})
}

// Stop stops the scheduler. It is safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.mu.Lock()
		if s.timer != nil {
			s.timer.Stop()
		}
		if s.ticker != nil {
			s.ticker.Stop()
		}
		s.mu.Unlock()
		close(s.done)
		log.Println("Scheduler stopped")
	})
}

// EnsureToday returns today's featured palette, generating and storing it
// when it does not exist yet.
func (s *Scheduler) EnsureToday() (models.DailyPalette, error) {
	today := s.now()

	existing, err := s.DailyPaletteRepo.GetByDate(today)
	if err == nil {
		return existing, nil
	}
	if !datastore.IsNotFound(err) {
		return models.DailyPalette{}, err
	}
	return s.GenerateDailyPalette()
}

// GenerateDailyPalette picks a random base color and relation, generates a
// palette of DefaultCount colors and stores it for today, replacing any
// existing entry.
func (s *Scheduler) GenerateDailyPalette() (models.DailyPalette, error) {
	log.Println("Generating daily palette...")

	today := s.now()
	base := fmt.Sprintf("#%06x", s.intN(1<<24))
	relation := models.RelationTypes[s.intN(len(models.RelationTypes))]

	colors := s.Generator.Generate(base, relation, models.DefaultCount)
	if len(colors) != models.DefaultCount {
		return models.DailyPalette{}, fmt.Errorf("could not generate a %s palette from %s", relation, base)
	}

	name, err := colormath.Name(base)
	if err != nil {
		name = ""
	}

	dailyPalette := models.DailyPalette{
		Date:         datastore.DailyPaletteDate(today),
		BaseColor:    base,
		BaseName:     name,
		RelationType: relation,
		Count:        models.DefaultCount,
		Palette:      colors,
		CreatedAt:    today.UTC(),
	}

	saved, err := s.DailyPaletteRepo.Create(dailyPalette)
	if err != nil {
		log.Printf("Error saving daily palette: %v", err)
		return models.DailyPalette{}, err
	}

	log.Printf("Successfully generated daily palette: %s %s for %s", saved.BaseColor, saved.RelationType, saved.Date)
	return saved, nil
}

func (s *Scheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Scheduler) intN(n int) int {
	if s.Rand != nil {
		return s.Rand.IntN(n)
	}
	return rand.IntN(n)
}
