package catalog

import (
	"context"
	"io"
	"strings"
	"testing"

	"stock-manager/core/apperror"
	"stock-manager/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const itemsJSON = `[
	{"id":"i1","url_name":"ash_prime_set","name":"Ash Prime Set","unique_name":"/Lotus/Sets/AshPrime"},
	{"id":"i2","url_name":"vitality","name":"Vitality","unique_name":"/Lotus/Mods/Vitality","max_rank":10},
	{"id":"i3","url_name":"lith_a1_relic","name":"Lith A1 Relic","unique_name":"/Lotus/Relics/LithA1","variants":["intact","exceptional","flawless","radiant"]}
]`

const weaponsJSON = `[
	{"id":"w1","url_name":"kronen","name":"Kronen","unique_name":"/Lotus/Weapons/Kronen","riven_type":"melee"}
]`

const attributesJSON = `[
	{"url_name":"critical_chance","effect":"Critical Chance","units":"percent"},
	{"url_name":"base_damage_/_melee_damage","effect":"Damage","units":"percent"}
]`

func storageWith(t *testing.T, objects map[string]string) *mocks.Client {
	t.Helper()
	client := new(mocks.Client)
	for name, body := range objects {
		body := body
		client.On("GetObject", mock.Anything, "catalog", name, mock.Anything).
			Return(io.NopCloser(strings.NewReader(body)), nil)
	}
	return client
}

func newTestResolver(t *testing.T) (*Resolver, *mocks.Client) {
	client := storageWith(t, map[string]string{
		ObjectItems:      itemsJSON,
		ObjectWeapons:    weaponsJSON,
		ObjectAttributes: attributesJSON,
	})
	return NewResolver(client, "catalog", zap.NewNop()), client
}

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func TestResolveKnownItem(t *testing.T) {
	r, _ := newTestResolver(t)

	item, err := r.Resolve(context.Background(), "ash_prime_set", nil)
	require.NoError(t, err)
	assert.Equal(t, "i1", item.ID)
	assert.Equal(t, "Ash Prime Set", item.Name)
}

func TestResolveUnknownItemIsNotFound(t *testing.T) {
	r, _ := newTestResolver(t)

	_, err := r.Resolve(context.Background(), "does_not_exist", nil)
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestResolveSubTypeValidation(t *testing.T) {
	tests := []struct {
		name    string
		urlName string
		sub     *SubType
		wantErr apperror.Kind
	}{
		{
			name:    "valid rank",
			urlName: "vitality",
			sub:     &SubType{Rank: int64Ptr(8)},
		},
		{
			name:    "rank above max",
			urlName: "vitality",
			sub:     &SubType{Rank: int64Ptr(11)},
			wantErr: apperror.KindValidation,
		},
		{
			name:    "rank on unrankable item",
			urlName: "ash_prime_set",
			sub:     &SubType{Rank: int64Ptr(1)},
			wantErr: apperror.KindValidation,
		},
		{
			name:    "valid variant",
			urlName: "lith_a1_relic",
			sub:     &SubType{Variant: strPtr("radiant")},
		},
		{
			name:    "unknown variant",
			urlName: "lith_a1_relic",
			sub:     &SubType{Variant: strPtr("pristine")},
			wantErr: apperror.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestResolver(t)
			_, err := r.Resolve(context.Background(), tt.urlName, tt.sub)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, apperror.IsKind(err, tt.wantErr))
			}
		})
	}
}

func TestResolveRivenWeapon(t *testing.T) {
	r, _ := newTestResolver(t)

	weapon, err := r.ResolveRivenWeapon(context.Background(), "kronen")
	require.NoError(t, err)
	assert.Equal(t, "melee", weapon.RivenType)

	_, err = r.ResolveRivenWeapon(context.Background(), "unknown_weapon")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestResolveAttribute(t *testing.T) {
	r, _ := newTestResolver(t)

	attr, err := r.ResolveAttribute(context.Background(), "critical_chance")
	require.NoError(t, err)
	assert.Equal(t, "Critical Chance", attr.Name)

	_, err = r.ResolveAttribute(context.Background(), "made_up_attribute")
	require.Error(t, err)
	assert.True(t, apperror.IsKind(err, apperror.KindValidation))
}

func TestResolveUsesCacheAcrossCalls(t *testing.T) {
	r, client := newTestResolver(t)

	_, err := r.Resolve(context.Background(), "ash_prime_set", nil)
	require.NoError(t, err)
	_, err = r.Resolve(context.Background(), "vitality", nil)
	require.NoError(t, err)

	// One fetch for the items object despite two resolves.
	client.AssertNumberOfCalls(t, "GetObject", 1)
}
