package calendar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/taskquest/internal/permission"
)

var ErrEventNotFound = errors.New("calendar: event not found")

type Event struct {
	ID    string    `yaml:"id"`
	Title string    `yaml:"title"`
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`
	RRule string    `yaml:"rrule,omitempty"`
}

type eventFile struct {
	Events []Event `yaml:"events"`
}

// FileGateway keeps events in a YAML file on local disk.
type FileGateway struct {
	path   string
	perms  permission.Checker
	logger *log.Logger

	mu sync.Mutex
}

func NewFileGateway(path string, perms permission.Checker, logger *log.Logger) *FileGateway {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &FileGateway{path: path, perms: perms, logger: logger}
}

func (g *FileGateway) allowed(ctx context.Context) bool {
	return g.perms != nil && g.perms.Granted(ctx, permission.Calendar)
}

func (g *FileGateway) CreateEvent(ctx context.Context, title string, start, end time.Time, rrule string) (string, bool) {
	if !g.allowed(ctx) {
		return "", false
	}
	if ctx.Err() != nil {
		return "", false
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	events, err := g.load()
	if err != nil {
		g.logger.Printf("warning: calendar create %q: %v", title, err)
		return "", false
	}
	ev := Event{ID: uuid.NewString(), Title: title, Start: start, End: end, RRule: rrule}
	events = append(events, ev)
	if err := g.save(events); err != nil {
		g.logger.Printf("warning: calendar create %q: %v", title, err)
		return "", false
	}
	return ev.ID, true
}

func (g *FileGateway) DeleteEvent(ctx context.Context, id string) bool {
	if !g.allowed(ctx) || strings.TrimSpace(id) == "" {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	events, err := g.load()
	if err != nil {
		g.logger.Printf("warning: calendar delete %s: %v", id, err)
		return false
	}
	idx := indexOf(events, id)
	if idx < 0 {
		g.logger.Printf("warning: calendar delete %s: %v", id, ErrEventNotFound)
		return false
	}
	events = append(events[:idx], events[idx+1:]...)
	if err := g.save(events); err != nil {
		g.logger.Printf("warning: calendar delete %s: %v", id, err)
		return false
	}
	return true
}

func (g *FileGateway) RenameEvent(ctx context.Context, id, title string) bool {
	if !g.allowed(ctx) || strings.TrimSpace(id) == "" {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	events, err := g.load()
	if err != nil {
		g.logger.Printf("warning: calendar rename %s: %v", id, err)
		return false
	}
	idx := indexOf(events, id)
	if idx < 0 {
		g.logger.Printf("warning: calendar rename %s: %v", id, ErrEventNotFound)
		return false
	}
	events[idx].Title = title
	if err := g.save(events); err != nil {
		g.logger.Printf("warning: calendar rename %s: %v", id, err)
		return false
	}
	return true
}

// Events lists stored events ordered by start time.
func (g *FileGateway) Events() ([]Event, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	events, err := g.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Start.Before(events[j].Start) })
	return events, nil
}

func (g *FileGateway) load() ([]Event, error) {
	raw, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read calendar: %w", err)
	}
	if strings.TrimSpace(string(raw)) == "" {
		return nil, nil
	}
	var f eventFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}
	return f.Events, nil
}

func (g *FileGateway) save(events []Event) error {
	if dir := filepath.Dir(g.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create calendar directory: %w", err)
		}
	}
	data, err := yaml.Marshal(eventFile{Events: events})
	if err != nil {
		return fmt.Errorf("marshal calendar: %w", err)
	}
	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}
	if err := os.Rename(tmp, g.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename calendar: %w", err)
	}
	return nil
}

func indexOf(events []Event, id string) int {
	for i := range events {
		if events[i].ID == id {
			return i
		}
	}
	return -1
}
