// Package catalog defines the barbershop service offering: the fixed set of
// base services, the optional add-ons that can be layered on top of them,
// and the composition rules that produce a priced, timed, described Service
// value.  The catalog is static data; nothing in it is mutated at runtime.
package catalog

import "errors"

// ErrUnknownService is returned by New when the requested base service name
// is not part of the catalog.  Unknown add-on names are NOT an error; they
// are ignored so that callers holding stale add-on tags never fail.
var ErrUnknownService = errors.New("unknown service")

// BaseService describes one of the fixed offerings a booking starts from.
//
// Fields:
//  Name        - catalog key, e.g. "Haircut".
//  Price       - base price in rupiah.
//  Duration    - base duration in minutes.
//  Description - short marketing text shown alongside the name.
type BaseService struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
}

// Addon describes an optional modifier.  Applying an addon adds its price
// and duration deltas to the running totals and appends " + Name" to the
// rendered description.
//
// Fields:
//  Name     - catalog key, e.g. "Hair Wash".
//  Price    - price delta in rupiah.
//  Duration - duration delta in minutes (may be zero).
type Addon struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Duration int    `json:"duration"`
}

// baseServices is the fixed enumerated set of bookable base services.
// Order matters only for listings; lookups go through baseByName.
var baseServices = []BaseService{
	{Name: "Haircut", Price: 50000, Duration: 30, Description: "Professional haircut"},
	{Name: "Shave", Price: 30000, Duration: 20, Description: "Clean shave"},
	{Name: "Styling", Price: 80000, Duration: 45, Description: "Hair styling"},
	{Name: "Coloring", Price: 150000, Duration: 90, Description: "Hair coloring"},
}

// addons is the fixed set of recognised add-ons.
var addons = []Addon{
	{Name: "Hair Wash", Price: 15000, Duration: 10},
	{Name: "Hair Spa", Price: 30000, Duration: 20},
	{Name: "Massage", Price: 15000, Duration: 10},
	{Name: "Hot Towel", Price: 10000, Duration: 5},
	{Name: "Premium Products", Price: 25000, Duration: 0},
}

var (
	baseByName  = make(map[string]BaseService, len(baseServices))
	addonByName = make(map[string]Addon, len(addons))
)

func init() {
	for _, b := range baseServices {
		baseByName[b.Name] = b
	}
	for _, a := range addons {
		addonByName[a.Name] = a
	}
}

// BaseServices returns a copy of the base service listing for display.
func BaseServices() []BaseService {
	out := make([]BaseService, len(baseServices))
	copy(out, baseServices)
	return out
}

// Addons returns a copy of the add-on listing for display.
func Addons() []Addon {
	out := make([]Addon, len(addons))
	copy(out, addons)
	return out
}
