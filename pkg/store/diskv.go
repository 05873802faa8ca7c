package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"wakeday/pkg/plan"
	"wakeday/pkg/prefs"
	"wakeday/pkg/task"
)

const (
	layoutISO = "2006-01-02"

	colTasks = "tasks"
	colPlan  = "plan"
	colPrefs = "prefs"

	prefsKeyID = "default"
)

// Load creates a Repository backed by diskv using the provided config.
func Load(cfg Config) (Repository, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &repository{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type repository struct {
	d        *diskv.Diskv
	basePath string
}

func (r *repository) ListTasks(ctx context.Context, f TaskFilter) []*task.Task {
	all := make([]*task.Task, 0)
	for key := range r.d.Keys(ctx.Done()) {
		if collectionOf(key) != colTasks {
			continue
		}
		t, err := r.readTask(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		if f.Match(t) {
			all = append(all, t)
		}
	}
	return all
}

func (r *repository) GetTask(ctx context.Context, id string) (*task.Task, error) {
	t, err := r.readTask(taskKey(id))
	if err != nil {
		return nil, fmt.Errorf("store: task %s: %w", id, err)
	}
	return t, nil
}

func (r *repository) SaveTask(t *task.Task) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return r.d.Write(taskKey(t.ID), data)
}

func (r *repository) Reassign(ctx context.Context, id string, on *task.Date) error {
	t, err := r.GetTask(ctx, id)
	if err != nil {
		return err
	}
	t.AssignedDate = on
	return r.SaveTask(t)
}

func (r *repository) ListBlocks(ctx context.Context, on task.Date, draft bool) []*plan.Block {
	all := make([]*plan.Block, 0)
	for key := range r.d.Keys(ctx.Done()) {
		if collectionOf(key) != colPlan {
			continue
		}
		b, err := r.readBlock(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		if b.PlanDate.SameDay(on.Time) && b.IsDraft == draft {
			all = append(all, b)
		}
	}
	return all
}

func (r *repository) InsertBlocks(blocks []*plan.Block) error {
	for _, b := range blocks {
		data, err := json.Marshal(b)
		if err != nil {
			return err
		}
		if err := r.d.Write(blockKey(b), data); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) DeleteBlocks(ctx context.Context, on task.Date, selected func(*plan.Block) bool) error {
	doomed := make([]string, 0)
	for key := range r.d.Keys(ctx.Done()) {
		if collectionOf(key) != colPlan {
			continue
		}
		b, err := r.readBlock(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		if b.PlanDate.SameDay(on.Time) && selected(b) {
			doomed = append(doomed, key)
		}
	}
	for _, key := range doomed {
		if err := r.d.Erase(key); err != nil {
			return fmt.Errorf("store: delete block %s: %w", key, err)
		}
	}
	return nil
}

func (r *repository) Preferences(ctx context.Context) (*prefs.Preferences, error) {
	key := fmt.Sprintf("%s-%s", toCollection(colPrefs), prefsKeyID)
	val, err := r.d.Read(key)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoPreferences
		}
		return nil, err
	}
	p := &prefs.Preferences{}
	if err := json.Unmarshal(val, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *repository) SavePreferences(p *prefs.Preferences) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s-%s", toCollection(colPrefs), prefsKeyID)
	return r.d.Write(key, data)
}

func (r *repository) readTask(key string) (*task.Task, error) {
	val, err := r.d.Read(key)
	if err != nil {
		return nil, err
	}
	t := &task.Task{}
	if err := json.Unmarshal(val, t); err != nil {
		return nil, err
	}
	if t.ID == "" {
		t.ID = keyToPathTransform(key).FileName
	}
	return t, nil
}

func (r *repository) readBlock(key string) (*plan.Block, error) {
	val, err := r.d.Read(key)
	if err != nil {
		return nil, err
	}
	b := &plan.Block{}
	if err := json.Unmarshal(val, b); err != nil {
		return nil, err
	}
	if b.ID == "" {
		b.ID = keyToPathTransform(key).FileName
	}
	return b, nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// taskKey makes `tasks-id`.
func taskKey(id string) string {
	return fmt.Sprintf("%s-%s", toCollection(colTasks), id)
}

// blockKey makes `plan-date-id`.
func blockKey(b *plan.Block) string {
	return fmt.Sprintf("%s-%s-%s", toCollection(colPlan), b.PlanDate.Format(layoutISO), b.ID)
}

// collectionOf decodes the leading path segment of a key back to its
// collection name.
func collectionOf(key string) string {
	pk := keyToPathTransform(key)
	if len(pk.Path) == 0 {
		return ""
	}
	return fromCollection(pk.Path[0])
}

func toCollection(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func fromCollection(s string) string {
	collection, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("fromCollection: %s", err)
	}
	return string(collection)
}
