package policy

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/ougirez/carbon4c/internal/aggregate"
	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/pkg/logger"
	"github.com/ougirez/carbon4c/internal/pkg/store"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownWeight      = errors.New("weight indicator is not declared")
	ErrDuplicateIndicator = errors.New("indicator declared twice")
)

// File is the on-disk indicator policy table.
type File struct {
	Indicators []domain.Indicator `yaml:"indicators" validate:"dive"`
}

type Service struct {
	store    store.IndicatorStore
	validate *validator.Validate
}

func NewPolicyService(store store.IndicatorStore) *Service {
	return &Service{store: store, validate: validator.New()}
}

// LoadFile reads and validates an indicator table from path.
func (s *Service) LoadFile(path string) ([]domain.Indicator, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // operator-provided path
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.Parse(raw)
}

func (s *Service) Parse(raw []byte) ([]domain.Indicator, error) {
	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %w", err)
	}

	for i := range file.Indicators {
		if err := defaults.Set(&file.Indicators[i]); err != nil {
			return nil, fmt.Errorf("defaults.Set, code-%s: %w", file.Indicators[i].Code, err)
		}
	}

	if err := s.Validate(file.Indicators); err != nil {
		return nil, err
	}

	return file.Indicators, nil
}

// Validate checks field rules, uniqueness and that every weight indicator is
// itself declared.
func (s *Service) Validate(indicators []domain.Indicator) error {
	if err := s.validate.Struct(File{Indicators: indicators}); err != nil {
		return fmt.Errorf("%w: %w", aggregate.ErrInvalidPolicy, err)
	}

	declared := make(map[string]struct{}, len(indicators))
	for _, ind := range indicators {
		if _, dup := declared[ind.Code]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateIndicator, ind.Code)
		}
		declared[ind.Code] = struct{}{}
	}

	for _, ind := range indicators {
		if ind.Policy != domain.PolicyWeightedAverage {
			continue
		}
		if _, ok := declared[ind.WeightCode]; !ok {
			return fmt.Errorf("%w: %s weighted by %s", ErrUnknownWeight, ind.Code, ind.WeightCode)
		}
	}

	_, err := aggregate.NewPolicyTable(indicators)
	return err
}

// Sync validates indicators and upserts them into the warehouse.
func (s *Service) Sync(ctx context.Context, indicators []domain.Indicator) error {
	if err := s.Validate(indicators); err != nil {
		return err
	}
	if err := s.store.UpsertIndicators(ctx, indicators); err != nil {
		return fmt.Errorf("store.UpsertIndicators: %w", err)
	}

	logger.Infof(ctx, "synced %d indicator policies", len(indicators))
	return nil
}

func (s *Service) List(ctx context.Context) ([]domain.Indicator, error) {
	indicators, err := s.store.ListIndicators(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListIndicators: %w", err)
	}
	return indicators, nil
}
