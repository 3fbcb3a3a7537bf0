package ports

import "github.com/gabrielcapilla/playbutton/internal/domain"

type JournalService interface {
	Record(entry domain.JournalEntry) error
	Recent(limit int) ([]domain.JournalEntry, error)
	Close() error
}
