package catalog

// SubType is a variant discriminator on an item identifier (rank, refinement)
// that changes its catalog descriptor.
type SubType struct {
	// Rank is the mod rank, when the item is rankable.
	Rank *int64 `json:"rank,omitempty"`
	// Variant is the refinement variant (e.g. "radiant"), when applicable.
	Variant *string `json:"variant,omitempty"`
}

// ItemDescriptor is the canonical catalog record for a plain tradeable item.
type ItemDescriptor struct {
	// ID is the marketplace item id.
	ID string `json:"id"`
	// URLName is the stable identifier used across the marketplace API.
	URLName string `json:"url_name"`
	// Name is the display name.
	Name string `json:"name"`
	// UniqueName is the game-internal path of the item.
	UniqueName string `json:"unique_name"`
	// MaxRank bounds the valid rank sub-type; nil means the item is unrankable.
	MaxRank *int64 `json:"max_rank,omitempty"`
	// Variants lists the valid refinement variants; empty means none.
	Variants []string `json:"variants,omitempty"`
}

// RivenWeapon is the canonical catalog record for a riven-capable weapon.
type RivenWeapon struct {
	ID         string `json:"id"`
	URLName    string `json:"url_name"`
	Name       string `json:"name"`
	UniqueName string `json:"unique_name"`
	// RivenType is the auction category the weapon's rivens trade under.
	RivenType string `json:"riven_type"`
}

// AttributeDescriptor is one known riven attribute.
type AttributeDescriptor struct {
	URLName string `json:"url_name"`
	Name    string `json:"effect"`
	// Units describes the magnitude units ("percent", "seconds", ...).
	Units string `json:"units,omitempty"`
}
