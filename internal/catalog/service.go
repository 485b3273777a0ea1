package catalog

import "strings"

// Service is a fully composed offering: one base service plus zero or more
// add-ons in application order.  It is an immutable value; every booking
// embeds its own copy so later catalog edits can never rewrite history.
// Price and duration are order-independent sums, the description is not:
// add-on names are appended in exactly the order they were applied.
//
// The persisted form is the structured pair (base name, ordered add-on
// names).  Totals and text are always recomputed from the catalog, never
// parsed back out of a rendered description.
type Service struct {
	Base   string   `json:"base_service"`
	Addons []string `json:"addons,omitempty"`
}

// New composes a Service from a base service name and an ordered list of
// add-on names.  The base name must be one of the catalog's base services;
// otherwise ErrUnknownService is reported.  Add-on names that the catalog
// does not recognise are dropped silently, preserving the order of the
// recognised ones.
func New(base string, addonNames []string) (Service, error) {
	if _, ok := baseByName[base]; !ok {
		return Service{}, ErrUnknownService
	}
	var applied []string
	for _, name := range addonNames {
		if _, ok := addonByName[name]; ok {
			applied = append(applied, name)
		}
	}
	return Service{Base: base, Addons: applied}, nil
}

// Valid reports whether the service still resolves against the catalog.
// A service loaded from disk may reference names the catalog no longer
// carries; the store uses this to reject such records at load time.
func (s Service) Valid() bool {
	if _, ok := baseByName[s.Base]; !ok {
		return false
	}
	for _, name := range s.Addons {
		if _, ok := addonByName[name]; !ok {
			return false
		}
	}
	return true
}

// Price folds the base price and every add-on delta into a total in rupiah.
func (s Service) Price() int64 {
	total := baseByName[s.Base].Price
	for _, name := range s.Addons {
		total += addonByName[name].Price
	}
	return total
}

// Duration folds the base duration and every add-on delta into total minutes.
func (s Service) Duration() int {
	total := baseByName[s.Base].Duration
	for _, name := range s.Addons {
		total += addonByName[name].Duration
	}
	return total
}

// Description renders the human-readable composition, e.g.
// "Haircut + Hair Wash + Hot Towel".  Add-ons appear in application order.
func (s Service) Description() string {
	var b strings.Builder
	b.WriteString(s.Base)
	for _, name := range s.Addons {
		b.WriteString(" + ")
		b.WriteString(name)
	}
	return b.String()
}
