package ports

import "github.com/gabrielcapilla/playbutton/internal/domain"

type ConfigService interface {
	Load() (domain.Config, error)
	Watch(onChange func(domain.Config))
}
