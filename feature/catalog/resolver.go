package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"stock-manager/core/apperror"
	"stock-manager/core/storage"

	"github.com/minio/minio-go/v7"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Object names of the catalog JSON files inside the storage bucket.
const (
	ObjectItems      = "catalog/Items.json"
	ObjectWeapons    = "catalog/RivenWeapons.json"
	ObjectAttributes = "catalog/RivenAttributes.json"
)

// DefaultCacheTTL is how long parsed catalog indices stay valid.
const DefaultCacheTTL = 15 * time.Minute

// Resolver maps stable item identifiers to canonical catalog descriptors.
// It is read-only reference data: catalog objects are fetched from object
// storage, parsed once, and indexed by url name behind a TTL cache.
type Resolver struct {
	client storage.Client
	bucket string
	cache  *gocache.Cache
	logger *zap.Logger
}

// NewResolver creates a catalog resolver backed by the given storage client.
func NewResolver(client storage.Client, bucket string, logger *zap.Logger) *Resolver {
	return &Resolver{
		client: client,
		bucket: bucket,
		cache:  gocache.New(DefaultCacheTTL, 2*DefaultCacheTTL),
		logger: logger,
	}
}

// Resolve returns the descriptor for an item identifier, validating the
// optional sub-type against it. An unknown identifier fails with NotFound;
// a sub-type the item does not support fails with Validation.
func (r *Resolver) Resolve(ctx context.Context, urlName string, sub *SubType) (*ItemDescriptor, error) {
	const op = "CatalogResolve"

	items, err := r.items(ctx)
	if err != nil {
		return nil, err
	}
	item, ok := items[urlName]
	if !ok {
		return nil, apperror.New(op, apperror.KindNotFound, "unknown item: %s", urlName)
	}

	if sub != nil {
		if sub.Rank != nil {
			if item.MaxRank == nil {
				return nil, apperror.New(op, apperror.KindValidation, "item %s is not rankable", urlName)
			}
			if *sub.Rank < 0 || *sub.Rank > *item.MaxRank {
				return nil, apperror.New(op, apperror.KindValidation,
					"rank %d out of range for %s (max %d)", *sub.Rank, urlName, *item.MaxRank)
			}
		}
		if sub.Variant != nil {
			if !contains(item.Variants, *sub.Variant) {
				return nil, apperror.New(op, apperror.KindValidation,
					"unknown variant %q for %s", *sub.Variant, urlName)
			}
		}
	}

	return &item, nil
}

// ResolveRivenWeapon returns the riven weapon descriptor for an identifier.
func (r *Resolver) ResolveRivenWeapon(ctx context.Context, urlName string) (*RivenWeapon, error) {
	const op = "CatalogResolveRivenWeapon"

	weapons, err := r.weapons(ctx)
	if err != nil {
		return nil, err
	}
	weapon, ok := weapons[urlName]
	if !ok {
		return nil, apperror.New(op, apperror.KindNotFound, "unknown weapon: %s", urlName)
	}
	return &weapon, nil
}

// ResolveAttribute returns the descriptor for a riven attribute identifier,
// failing with Validation for identifiers the catalog does not know.
func (r *Resolver) ResolveAttribute(ctx context.Context, urlName string) (*AttributeDescriptor, error) {
	const op = "CatalogResolveAttribute"

	attrs, err := r.attributes(ctx)
	if err != nil {
		return nil, err
	}
	attr, ok := attrs[urlName]
	if !ok {
		return nil, apperror.New(op, apperror.KindValidation, "invalid attribute: %s", urlName)
	}
	return &attr, nil
}

func (r *Resolver) items(ctx context.Context) (map[string]ItemDescriptor, error) {
	if cached, ok := r.cache.Get(ObjectItems); ok {
		return cached.(map[string]ItemDescriptor), nil
	}
	var list []ItemDescriptor
	if err := r.load(ctx, ObjectItems, &list); err != nil {
		return nil, err
	}
	index := make(map[string]ItemDescriptor, len(list))
	for _, item := range list {
		index[item.URLName] = item
	}
	r.cache.SetDefault(ObjectItems, index)
	return index, nil
}

func (r *Resolver) weapons(ctx context.Context) (map[string]RivenWeapon, error) {
	if cached, ok := r.cache.Get(ObjectWeapons); ok {
		return cached.(map[string]RivenWeapon), nil
	}
	var list []RivenWeapon
	if err := r.load(ctx, ObjectWeapons, &list); err != nil {
		return nil, err
	}
	index := make(map[string]RivenWeapon, len(list))
	for _, weapon := range list {
		index[weapon.URLName] = weapon
	}
	r.cache.SetDefault(ObjectWeapons, index)
	return index, nil
}

func (r *Resolver) attributes(ctx context.Context) (map[string]AttributeDescriptor, error) {
	if cached, ok := r.cache.Get(ObjectAttributes); ok {
		return cached.(map[string]AttributeDescriptor), nil
	}
	var list []AttributeDescriptor
	if err := r.load(ctx, ObjectAttributes, &list); err != nil {
		return nil, err
	}
	index := make(map[string]AttributeDescriptor, len(list))
	for _, attr := range list {
		index[attr.URLName] = attr
	}
	r.cache.SetDefault(ObjectAttributes, index)
	return index, nil
}

// load fetches and decodes one catalog object from storage.
func (r *Resolver) load(ctx context.Context, objectName string, out any) error {
	const op = "CatalogLoad"

	obj, err := r.client.GetObject(ctx, r.bucket, objectName, minio.GetObjectOptions{})
	if err != nil {
		return apperror.Wrap(op, apperror.KindStorage, err)
	}
	defer obj.Close()

	raw, err := io.ReadAll(obj)
	if err != nil {
		return apperror.Wrap(op, apperror.KindStorage, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperror.Wrap(op, apperror.KindStorage,
			fmt.Errorf("malformed catalog object %s: %w", objectName, err))
	}
	r.logger.Debug("catalog object loaded", zap.String("object", objectName))
	return nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
