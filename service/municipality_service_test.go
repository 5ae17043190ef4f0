package service

import (
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ahorro-energia/domain"
	"ahorro-energia/repository"
)

func newMunicipalityService(t *testing.T) *MunicipalityService {
	t.Helper()
	repo, err := repository.NewMunicipalityRepositoryMemory(repository.DefaultMunicipalities())
	require.NoError(t, err)
	return NewMunicipalityService(repo, zerolog.Nop())
}

func TestDeriveAndInsert_DerivesRate(t *testing.T) {
	svc := newMunicipalityService(t)

	got, err := svc.DeriveAndInsert(domain.NewMunicipalityInput{
		Name:           "Test Town",
		ConsumptionKwh: ptr(100),
		Cost:           ptr(55000),
		SavingsPercent: ptr(20),
	})
	require.NoError(t, err)

	assert.Equal(t, "test_town", got.Key)
	assert.Equal(t, "Test Town", got.Name)
	assert.InDelta(t, 550, got.RatePerKwh, 0)
	assert.InDelta(t, 20, got.SavingsPercent, 0)

	stored, ok := svc.Lookup("test_town")
	require.True(t, ok)
	assert.Equal(t, got, stored)

	keys := svc.AllKeys()
	assert.Equal(t, "test_town", keys[len(keys)-1])
}

func TestDeriveAndInsert_DuplicateLeavesRegistryUnchanged(t *testing.T) {
	svc := newMunicipalityService(t)
	input := domain.NewMunicipalityInput{
		Name:           "Test Town",
		ConsumptionKwh: ptr(100),
		Cost:           ptr(55000),
		SavingsPercent: ptr(20),
	}
	_, err := svc.DeriveAndInsert(input)
	require.NoError(t, err)
	before := svc.List()

	input.Cost = ptr(70000)
	_, err = svc.DeriveAndInsert(input)
	require.ErrorIs(t, err, ErrMunicipalityExists)
	kind, _ := KindOf(err)
	assert.Equal(t, KindValidation, kind)

	assert.Equal(t, before, svc.List())
	stored, _ := svc.Lookup("test_town")
	assert.InDelta(t, 550, stored.RatePerKwh, 0)
}

func TestDeriveAndInsert_CollidesWithSeedAfterNormalization(t *testing.T) {
	svc := newMunicipalityService(t)

	for _, name := range []string{"riohacha", "  RIOHACHA ", "Santa   Marta", "santa marta!"} {
		_, err := svc.DeriveAndInsert(domain.NewMunicipalityInput{
			Name:           name,
			ConsumptionKwh: ptr(100),
			RatePerKwh:     ptr(500),
			SavingsPercent: ptr(10),
		})
		assert.ErrorIs(t, err, ErrMunicipalityExists, name)
	}
	assert.Len(t, svc.AllKeys(), 5)
}

func TestDeriveAndInsert_Derivations(t *testing.T) {
	tests := []struct {
		name            string
		input           domain.NewMunicipalityInput
		wantConsumption float64
		wantCost        float64
		wantRate        float64
	}{
		{
			name:            "missing consumption",
			input:           domain.NewMunicipalityInput{Cost: ptr(55000), RatePerKwh: ptr(550)},
			wantConsumption: 100,
			wantCost:        55000,
			wantRate:        550,
		},
		{
			name:            "missing consumption rounds to nearest",
			input:           domain.NewMunicipalityInput{Cost: ptr(1000), RatePerKwh: ptr(300)},
			wantConsumption: 3,
			wantCost:        1000,
			wantRate:        300,
		},
		{
			name:            "missing cost is exact",
			input:           domain.NewMunicipalityInput{ConsumptionKwh: ptr(100), RatePerKwh: ptr(550)},
			wantConsumption: 100,
			wantCost:        55000,
			wantRate:        550,
		},
		{
			name:            "missing rate rounds half away from zero",
			input:           domain.NewMunicipalityInput{ConsumptionKwh: ptr(200), Cost: ptr(100100)},
			wantConsumption: 200,
			wantCost:        100100,
			wantRate:        501,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMunicipalityService(t)
			tt.input.Name = "Maicao"
			tt.input.SavingsPercent = ptr(26)

			got, err := svc.DeriveAndInsert(tt.input)
			require.NoError(t, err)

			assert.InDelta(t, tt.wantConsumption, got.AverageConsumptionKwh, 0)
			assert.InDelta(t, tt.wantCost, got.AverageCost, 0)
			assert.InDelta(t, tt.wantRate, got.RatePerKwh, 0)
		})
	}
}

func TestDeriveAndInsert_LinkedFieldInvariant(t *testing.T) {
	values := []float64{1, 7, 99, 180, 500, 1234, 90000}
	n := 0

	for _, a := range values {
		for _, b := range values {
			inputs := []domain.NewMunicipalityInput{
				{ConsumptionKwh: ptr(a), Cost: ptr(b)},
				{Cost: ptr(a), RatePerKwh: ptr(b)},
				{ConsumptionKwh: ptr(a), RatePerKwh: ptr(b)},
			}
			for _, input := range inputs {
				svc := newMunicipalityService(t)
				n++
				input.Name = "Pueblo"
				input.SavingsPercent = ptr(15)

				got, err := svc.DeriveAndInsert(input)
				if errors.Is(err, ErrDerivedNotPositive) || errors.Is(err, ErrAmountOutOfRange) {
					continue
				}
				require.NoError(t, err)

				diff := math.Abs(got.AverageCost - got.AverageConsumptionKwh*got.RatePerKwh)
				switch missing, _ := MissingLinkedField(input); missing {
				case FieldConsumption:
					assert.LessOrEqual(t, diff, got.RatePerKwh/2)
				case FieldRate:
					assert.LessOrEqual(t, diff, got.AverageConsumptionKwh/2)
				case FieldCost:
					assert.Zero(t, diff)
				}
			}
		}
	}
	assert.Positive(t, n)
}

func TestDeriveAndInsert_RequiresExactlyTwoFields(t *testing.T) {
	tests := []struct {
		name  string
		input domain.NewMunicipalityInput
	}{
		{name: "none", input: domain.NewMunicipalityInput{}},
		{name: "only consumption", input: domain.NewMunicipalityInput{ConsumptionKwh: ptr(100)}},
		{name: "only cost", input: domain.NewMunicipalityInput{Cost: ptr(50000)}},
		{name: "only rate", input: domain.NewMunicipalityInput{RatePerKwh: ptr(500)}},
		{
			name:  "all three",
			input: domain.NewMunicipalityInput{ConsumptionKwh: ptr(100), Cost: ptr(50000), RatePerKwh: ptr(500)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMunicipalityService(t)
			tt.input.Name = "Uribia"
			tt.input.SavingsPercent = ptr(35)

			_, err := svc.DeriveAndInsert(tt.input)
			require.ErrorIs(t, err, ErrLinkedFieldCount)
			assert.Len(t, svc.AllKeys(), 5)
		})
	}
}

func TestDeriveAndInsert_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   domain.NewMunicipalityInput
		wantErr error
	}{
		{
			name:    "empty name",
			input:   domain.NewMunicipalityInput{Name: "   ", ConsumptionKwh: ptr(100), RatePerKwh: ptr(500), SavingsPercent: ptr(10)},
			wantErr: ErrInvalidName,
		},
		{
			name:    "name without key characters",
			input:   domain.NewMunicipalityInput{Name: "¿?", ConsumptionKwh: ptr(100), RatePerKwh: ptr(500), SavingsPercent: ptr(10)},
			wantErr: ErrInvalidName,
		},
		{
			name:    "zero consumption",
			input:   domain.NewMunicipalityInput{Name: "Fonseca", ConsumptionKwh: ptr(0), RatePerKwh: ptr(500), SavingsPercent: ptr(10)},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative rate",
			input:   domain.NewMunicipalityInput{Name: "Fonseca", ConsumptionKwh: ptr(100), RatePerKwh: ptr(-500), SavingsPercent: ptr(10)},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "NaN cost",
			input:   domain.NewMunicipalityInput{Name: "Fonseca", Cost: ptr(math.NaN()), RatePerKwh: ptr(500), SavingsPercent: ptr(10)},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "missing savings percent",
			input:   domain.NewMunicipalityInput{Name: "Fonseca", ConsumptionKwh: ptr(100), RatePerKwh: ptr(500)},
			wantErr: ErrInvalidSavings,
		},
		{
			name:    "savings percent above 100",
			input:   domain.NewMunicipalityInput{Name: "Fonseca", ConsumptionKwh: ptr(100), RatePerKwh: ptr(500), SavingsPercent: ptr(100.5)},
			wantErr: ErrInvalidSavings,
		},
		{
			name:    "negative savings percent",
			input:   domain.NewMunicipalityInput{Name: "Fonseca", ConsumptionKwh: ptr(100), RatePerKwh: ptr(500), SavingsPercent: ptr(-1)},
			wantErr: ErrInvalidSavings,
		},
		{
			name:    "derived consumption rounds to zero",
			input:   domain.NewMunicipalityInput{Name: "Fonseca", Cost: ptr(100), RatePerKwh: ptr(500), SavingsPercent: ptr(10)},
			wantErr: ErrDerivedNotPositive,
		},
		{
			name:    "derived rate rounds to zero",
			input:   domain.NewMunicipalityInput{Name: "Fonseca", ConsumptionKwh: ptr(1000), Cost: ptr(400), SavingsPercent: ptr(10)},
			wantErr: ErrDerivedNotPositive,
		},
		{
			name:    "consumption above limit",
			input:   domain.NewMunicipalityInput{Name: "Fonseca", ConsumptionKwh: ptr(1e200), RatePerKwh: ptr(500), SavingsPercent: ptr(10)},
			wantErr: ErrAmountOutOfRange,
		},
		{
			name:    "rate above limit",
			input:   domain.NewMunicipalityInput{Name: "Fonseca", ConsumptionKwh: ptr(100), RatePerKwh: ptr(1e200), SavingsPercent: ptr(10)},
			wantErr: ErrAmountOutOfRange,
		},
		{
			name:    "derived cost above limit",
			input:   domain.NewMunicipalityInput{Name: "Fonseca", ConsumptionKwh: ptr(MaxConsumptionKwh), RatePerKwh: ptr(MaxRatePerKwh), SavingsPercent: ptr(10)},
			wantErr: ErrAmountOutOfRange,
		},
		{
			name:    "derived rate above limit",
			input:   domain.NewMunicipalityInput{Name: "Fonseca", ConsumptionKwh: ptr(1), Cost: ptr(MaxCostPesos), SavingsPercent: ptr(10)},
			wantErr: ErrAmountOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newMunicipalityService(t)

			_, err := svc.DeriveAndInsert(tt.input)
			require.ErrorIs(t, err, tt.wantErr)
			kind, ok := KindOf(err)
			require.True(t, ok)
			assert.Equal(t, KindValidation, kind)
			assert.Len(t, svc.AllKeys(), 5)
		})
	}
}

func TestDeriveAndInsert_SavingsPercentBounds(t *testing.T) {
	svc := newMunicipalityService(t)

	for i, pct := range []float64{0, 100} {
		_, err := svc.DeriveAndInsert(domain.NewMunicipalityInput{
			Name:           []string{"Limite Bajo", "Limite Alto"}[i],
			ConsumptionKwh: ptr(100),
			RatePerKwh:     ptr(500),
			SavingsPercent: ptr(pct),
		})
		require.NoError(t, err)
	}
	assert.Equal(t,
		[]string{"riohacha", "barrancas", "valledupar", "santa_marta", "soledad", "limite_bajo", "limite_alto"},
		svc.AllKeys(),
	)
}

func TestMissingLinkedField(t *testing.T) {
	field, ok := MissingLinkedField(domain.NewMunicipalityInput{ConsumptionKwh: ptr(1), Cost: ptr(2)})
	assert.True(t, ok)
	assert.Equal(t, FieldRate, field)

	field, ok = MissingLinkedField(domain.NewMunicipalityInput{Cost: ptr(2), RatePerKwh: ptr(3)})
	assert.True(t, ok)
	assert.Equal(t, FieldConsumption, field)

	_, ok = MissingLinkedField(domain.NewMunicipalityInput{Cost: ptr(2)})
	assert.False(t, ok)

	_, ok = MissingLinkedField(domain.NewMunicipalityInput{ConsumptionKwh: ptr(1), Cost: ptr(2), RatePerKwh: ptr(3)})
	assert.False(t, ok)
}
