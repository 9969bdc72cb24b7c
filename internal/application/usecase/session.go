package usecase

import (
	"context"

	"github.com/lite-lake/infra-bamctl/internal/config"
	"github.com/lite-lake/infra-bamctl/internal/domain"
	"github.com/lite-lake/infra-bamctl/internal/infrastructure/bluecat"
)

// Session is one authenticated conversation with the address manager. It
// resolves the configuration at open time and the view lazily, and must be
// closed on every exit path.
type Session struct {
	settings  config.Settings
	client    *bluecat.Client
	configRef bluecat.Ref
	viewRef   *bluecat.Ref
}

// Open validates the settings, logs in and resolves the configuration.
// No network call happens when validation fails.
func Open(ctx context.Context, settings config.Settings) (*Session, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	client := bluecat.New(settings)
	if err := client.Login(ctx); err != nil {
		client.Close()
		return nil, err
	}

	configRef, err := client.ResolveConfiguration(ctx, settings.Config)
	if err != nil {
		client.Close()
		return nil, domain.WrapOp("resolve configuration", err)
	}

	return &Session{
		settings:  settings,
		client:    client,
		configRef: configRef,
	}, nil
}

func (s *Session) Close() {
	s.client.Close()
}

func (s *Session) ConfigName() string {
	return s.configRef.Name
}

func (s *Session) Networks() *Networks {
	return &Networks{s: s}
}

func (s *Session) DNS() *DNS {
	return &DNS{s: s}
}

func (s *Session) view(ctx context.Context) (bluecat.Ref, error) {
	if s.viewRef == nil {
		v, err := s.client.ResolveView(ctx, s.configRef.Name, s.settings.View)
		if err != nil {
			return bluecat.Ref{}, domain.WrapOp("resolve view", err)
		}
		s.viewRef = &v
	}
	return *s.viewRef, nil
}
