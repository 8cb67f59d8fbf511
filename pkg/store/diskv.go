package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/medlog/pkg/entry"
)

// Keys of the values kept in the store.
const (
	KeyRecords        = "records"
	KeyPets           = "pets"
	KeyVets           = "vets"
	KeyLastCustomDays = "lastCustomDays"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("store: record not found")
	// ErrUnreadableLog is returned by mutations when the stored log cannot be
	// read as a list; the blob is left untouched.
	ErrUnreadableLog = errors.New("store: record log is unreadable")
)

// Persistence is the dosing log and the small lists kept beside it. Every
// mutation rewrites the whole log.
type Persistence interface {
	Records() []*entry.Entry
	Prepend(e *entry.Entry) error
	Update(id string, fn func(e *entry.Entry)) (*entry.Entry, error)
	Delete(id string) error
	Pets() []string
	RememberPet(name string)
	Vets() []string
	LastCustomDays() int
	SetLastCustomDays(n int)
}

// Blobs is key-addressed storage for JSON documents and plain strings. Reads
// fall back, writes never fail the caller; both log what went wrong.
type Blobs struct {
	d   *diskv.Diskv
	log *slog.Logger
}

// NewBlobs opens diskv storage rooted at basePath.
func NewBlobs(basePath string, log *slog.Logger) *Blobs {
	if log == nil {
		log = slog.Default()
	}
	return &Blobs{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		log: log,
	}
}

// ReadJSON decodes key, returning fallback when the key is missing or does
// not decode.
func ReadJSON[T any](b *Blobs, key string, fallback T) T {
	v, err := decodeJSON[T](b, key)
	if err != nil {
		return fallback
	}
	return v
}

// decodeJSON is ReadJSON reporting why it fell back. A missing key decodes as
// the zero value.
func decodeJSON[T any](b *Blobs, key string) (T, error) {
	var v T
	data, err := b.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		b.log.Warn("store: read failed", "key", key, "err", err)
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		b.log.Warn("store: decode failed", "key", key, "err", err)
		return v, err
	}
	return v, nil
}

// WriteJSON encodes value under key.
func (b *Blobs) WriteJSON(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		b.log.Error("store: encode failed", "key", key, "err", err)
		return
	}
	if err := b.d.Write(key, data); err != nil {
		b.log.Error("store: write failed", "key", key, "err", err)
	}
}

// ReadString returns the raw value under key, if any.
func (b *Blobs) ReadString(key string) (string, bool) {
	if !b.d.Has(key) {
		return "", false
	}
	data, err := b.d.Read(key)
	if err != nil {
		b.log.Warn("store: read failed", "key", key, "err", err)
		return "", false
	}
	return string(data), true
}

// WriteString stores s under key as is.
func (b *Blobs) WriteString(key, s string) {
	if err := b.d.WriteString(key, s); err != nil {
		b.log.Error("store: write failed", "key", key, "err", err)
	}
}

// Load creates a Persistence backed by diskv at the configured path. vets
// seeds the roster when none has been stored.
func Load(cfg Config, vets []string, log *slog.Logger) (Persistence, error) {
	if cfg == nil {
		settings, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg, vets = settings, settings.Vets
	}
	basePath := cfg.BasePath()
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: base path unknown")
	}
	if len(vets) == 0 {
		vets = DefaultVets
	}
	return &persistence{blobs: NewBlobs(basePath, log), vets: vets}, nil
}

type persistence struct {
	blobs *Blobs
	vets  []string
}

// recordLog is the decoded record list. Records that do not decode are kept raw
// so that rewrites carry them along.
type recordLog struct {
	records []*entry.Entry
	skipped []json.RawMessage
}

func (p *persistence) load() (recordLog, error) {
	raws, err := decodeJSON[[]json.RawMessage](p.blobs, KeyRecords)
	if err != nil {
		return recordLog{}, fmt.Errorf("%w: %v", ErrUnreadableLog, err)
	}
	l := recordLog{records: make([]*entry.Entry, 0, len(raws))}
	for i, raw := range raws {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			continue
		}
		e := &entry.Entry{}
		if err := json.Unmarshal(raw, e); err != nil {
			p.blobs.log.Warn("store: skipping undecodable record", "index", i, "err", err)
			l.skipped = append(l.skipped, raw)
			continue
		}
		l.records = append(l.records, e)
	}
	return l, nil
}

func (p *persistence) save(l recordLog) {
	out := make([]any, 0, len(l.records)+len(l.skipped))
	for _, e := range l.records {
		out = append(out, e)
	}
	for _, raw := range l.skipped {
		out = append(out, raw)
	}
	p.blobs.WriteJSON(KeyRecords, out)
}

func (p *persistence) Records() []*entry.Entry {
	l, err := p.load()
	if err != nil {
		return []*entry.Entry{}
	}
	return l.records
}

func (p *persistence) Prepend(e *entry.Entry) error {
	if e == nil || e.ID == "" {
		return errors.New("store: record id required")
	}
	l, err := p.load()
	if err != nil {
		return err
	}
	l.records = append([]*entry.Entry{e}, l.records...)
	p.save(l)
	return nil
}

func (p *persistence) Update(id string, fn func(e *entry.Entry)) (*entry.Entry, error) {
	l, err := p.load()
	if err != nil {
		return nil, err
	}
	for _, e := range l.records {
		if e.ID == id {
			fn(e)
			e.ID = id
			p.save(l)
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (p *persistence) Delete(id string) error {
	l, err := p.load()
	if err != nil {
		return err
	}
	kept := make([]*entry.Entry, 0, len(l.records))
	for _, e := range l.records {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(l.records) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	l.records = kept
	p.save(l)
	return nil
}

func (p *persistence) Pets() []string {
	return ReadJSON(p.blobs, KeyPets, []string{})
}

func (p *persistence) RememberPet(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	pets := p.Pets()
	for _, known := range pets {
		if known == name {
			return
		}
	}
	p.blobs.WriteJSON(KeyPets, append([]string{name}, pets...))
}

func (p *persistence) Vets() []string {
	return ReadJSON(p.blobs, KeyVets, p.vets)
}

func (p *persistence) LastCustomDays() int {
	s, ok := p.blobs.ReadString(KeyLastCustomDays)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0
	}
	return n
}

func (p *persistence) SetLastCustomDays(n int) {
	if n < 1 {
		return
	}
	p.blobs.WriteString(KeyLastCustomDays, strconv.Itoa(n))
}
