package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gabrielcapilla/playbutton/internal/domain"
	"github.com/gabrielcapilla/playbutton/internal/logger"
	"github.com/gabrielcapilla/playbutton/internal/ports"

	"go.etcd.io/bbolt"
)

var journalBucket = []byte("journal")

// BboltJournal keeps an append-only log of button transitions.
type BboltJournal struct {
	db *bbolt.DB
}

func NewBboltJournal(dbPath string) (*BboltJournal, error) {
	options := &bbolt.Options{Timeout: 1 * time.Second}
	db, err := bbolt.Open(dbPath, 0600, options)
	if err != nil {
		return nil, fmt.Errorf("could not open bbolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(journalBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create journal bucket: %w", err)
	}

	return &BboltJournal{db: db}, nil
}

// Keys are big-endian bucket sequences so cursor order is insertion order.
func journalKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

func (s *BboltJournal) Record(entry domain.JournalEntry) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(journalBucket)

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		if entry.At.IsZero() {
			entry.At = time.Now()
		}

		value, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("error serializing journal entry: %w", err)
		}

		return b.Put(journalKey(seq), value)
	})
}

// Recent returns up to limit entries, newest first.
func (s *BboltJournal) Recent(limit int) ([]domain.JournalEntry, error) {
	var entries []domain.JournalEntry

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(journalBucket).Cursor()

		for k, v := c.Last(); k != nil && len(entries) < limit; k, v = c.Prev() {
			var entry domain.JournalEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("error deserializing journal entry: %w", err)
			}
			entries = append(entries, entry)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *BboltJournal) Close() error {
	return s.db.Close()
}

// JournalObserver records every transition. Write failures are logged and
// never reach the button.
type JournalObserver struct {
	journal ports.JournalService
	variant string
	now     func() time.Time
}

func NewJournalObserver(journal ports.JournalService, variant string) *JournalObserver {
	return &JournalObserver{journal: journal, variant: variant, now: time.Now}
}

func (o *JournalObserver) OnTransition(t domain.Transition) {
	entry := domain.JournalEntry{Transition: t, Variant: o.variant, At: o.now()}
	if err := o.journal.Record(entry); err != nil {
		logger.Log.Error().Err(err).Msg("Could not record transition")
	}
}
