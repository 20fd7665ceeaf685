package domain

// BedCategory names one of the tracked bed types.
type BedCategory string

const (
	BedICU       BedCategory = "icu"
	BedGeneral   BedCategory = "general"
	BedEmergency BedCategory = "emergency"
	BedPediatric BedCategory = "pediatric"
)

var BedCategories = []BedCategory{BedICU, BedGeneral, BedEmergency, BedPediatric}

// BedCounts tracks one bed category. Total and Available are the editable
// pair; Occupied is always derived as Total-Available, clamped to zero.
type BedCounts struct {
	Total     int `json:"total"`
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
}

// ReconcileBeds derives a consistent BedCounts from the editable pair.
// No field ever goes negative.
func ReconcileBeds(total, available int) BedCounts {
	if total < 0 {
		total = 0
	}
	if available < 0 {
		available = 0
	}
	occupied := total - available
	if occupied < 0 {
		occupied = 0
	}
	return BedCounts{Total: total, Available: available, Occupied: occupied}
}

// Normalized re-derives Occupied from the stored Total/Available pair.
func (b BedCounts) Normalized() BedCounts {
	return ReconcileBeds(b.Total, b.Available)
}

type BedInventory struct {
	ICU       BedCounts `json:"icu"`
	General   BedCounts `json:"general"`
	Emergency BedCounts `json:"emergency"`
	Pediatric BedCounts `json:"pediatric"`
}

// Category returns the counts for one category; unknown categories read as zero.
func (inv BedInventory) Category(c BedCategory) BedCounts {
	switch c {
	case BedICU:
		return inv.ICU
	case BedGeneral:
		return inv.General
	case BedEmergency:
		return inv.Emergency
	case BedPediatric:
		return inv.Pediatric
	}
	return BedCounts{}
}

// SetCategory stores reconciled counts for one category.
func (inv *BedInventory) SetCategory(c BedCategory, counts BedCounts) {
	counts = counts.Normalized()
	switch c {
	case BedICU:
		inv.ICU = counts
	case BedGeneral:
		inv.General = counts
	case BedEmergency:
		inv.Emergency = counts
	case BedPediatric:
		inv.Pediatric = counts
	}
}

// Normalized reconciles every category.
func (inv BedInventory) Normalized() BedInventory {
	return BedInventory{
		ICU:       inv.ICU.Normalized(),
		General:   inv.General.Normalized(),
		Emergency: inv.Emergency.Normalized(),
		Pediatric: inv.Pediatric.Normalized(),
	}
}

// BedUpdate is the payload sent upstream when bed availability changes.
// Only the semantically meaningful pair travels; totals are server-derived.
type BedCategoryUpdate struct {
	Available int `json:"available"`
	Occupied  int `json:"occupied"`
}

type BedUpdate struct {
	ICU       BedCategoryUpdate `json:"icu"`
	General   BedCategoryUpdate `json:"general"`
	Emergency BedCategoryUpdate `json:"emergency"`
	Pediatric BedCategoryUpdate `json:"pediatric"`
}

// UpdateFromInventory builds the wire payload from a reconciled inventory.
func (inv BedInventory) Update() BedUpdate {
	inv = inv.Normalized()
	return BedUpdate{
		ICU:       BedCategoryUpdate{Available: inv.ICU.Available, Occupied: inv.ICU.Occupied},
		General:   BedCategoryUpdate{Available: inv.General.Available, Occupied: inv.General.Occupied},
		Emergency: BedCategoryUpdate{Available: inv.Emergency.Available, Occupied: inv.Emergency.Occupied},
		Pediatric: BedCategoryUpdate{Available: inv.Pediatric.Available, Occupied: inv.Pediatric.Occupied},
	}
}

// BloodStock holds unit counts per blood group, keyed the way the upstream
// API serializes them.
type BloodStock struct {
	APos  int `json:"A_pos"`
	ANeg  int `json:"A_neg"`
	BPos  int `json:"B_pos"`
	BNeg  int `json:"B_neg"`
	ABPos int `json:"AB_pos"`
	ABNeg int `json:"AB_neg"`
	OPos  int `json:"O_pos"`
	ONeg  int `json:"O_neg"`
}

// Clamped returns the stock with every group floored at zero.
func (s BloodStock) Clamped() BloodStock {
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		return v
	}
	return BloodStock{
		APos:  clamp(s.APos),
		ANeg:  clamp(s.ANeg),
		BPos:  clamp(s.BPos),
		BNeg:  clamp(s.BNeg),
		ABPos: clamp(s.ABPos),
		ABNeg: clamp(s.ABNeg),
		OPos:  clamp(s.OPos),
		ONeg:  clamp(s.ONeg),
	}
}

type Hospital struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Location   string       `json:"location"`
	Contact    string       `json:"contact"`
	Beds       BedInventory `json:"beds"`
	Facilities []string     `json:"facilities,omitempty"`
}

type BloodBank struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Location string     `json:"location"`
	Contact  string     `json:"contact"`
	Stock    BloodStock `json:"stock"`
}
