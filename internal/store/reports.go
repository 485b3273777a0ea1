package store

import (
	"context"
	"math"
	"sort"

	"github.com/rakafardani/barbershop-booking/internal/model"
)

// Overview aggregates the owner dashboard headline numbers.
//
// Fields:
//  TotalBookings     - every booking ever created.
//  CompletedBookings - bookings in the completed state.
//  CanceledBookings  - bookings in the canceled state.
//  TotalRevenue      - sum of paid payment amounts, rupiah.
//  AverageRating     - mean feedback rating across all barbers, 0 when
//                      no feedback exists.
type Overview struct {
	TotalBookings     int     `json:"total_bookings"`
	CompletedBookings int     `json:"completed_bookings"`
	CanceledBookings  int     `json:"canceled_bookings"`
	TotalRevenue      int64   `json:"total_revenue"`
	AverageRating     float64 `json:"average_rating"`
}

// BarberStats aggregates one barber's performance view.
type BarberStats struct {
	BarberID          string      `json:"barber_id"`
	TotalBookings     int         `json:"total_bookings"`
	CompletedBookings int         `json:"completed_bookings"`
	Revenue           int64       `json:"revenue"`
	AverageRating     float64     `json:"average_rating"`
	RatingCounts      map[int]int `json:"rating_counts"`
}

// RevenueLine is one row of the owner revenue report.
type RevenueLine struct {
	BarberID   string `json:"barber_id,omitempty"`
	BarberName string `json:"barber_name,omitempty"`
	Completed  int    `json:"completed_bookings"`
	Revenue    int64  `json:"revenue"`
}

// RevenueReport breaks paid revenue down per barber, with an unassigned
// line for "any available" bookings.
type RevenueReport struct {
	TotalRevenue int64         `json:"total_revenue"`
	ByBarber     []RevenueLine `json:"by_barber"`
}

// StoreOverview computes the owner headline aggregates with one scan per
// entity map.
func (s *EntityStore) StoreOverview(_ context.Context) Overview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var o Overview
	o.TotalBookings = len(s.state.Bookings)
	for _, b := range s.state.Bookings {
		switch b.Status {
		case model.StatusCompleted:
			o.CompletedBookings++
		case model.StatusCanceled:
			o.CanceledBookings++
		}
	}
	for _, p := range s.state.Payments {
		if p.Status == model.PaymentPaid {
			o.TotalRevenue += p.Amount
		}
	}
	o.AverageRating = averageRating(s.state.Feedbacks, "")
	return o
}

// StatsForBarber computes one barber's dashboard numbers.  Revenue is the
// summed service price of the barber's completed bookings, matching what
// the barber actually delivered rather than what has been paid so far.
func (s *EntityStore) StatsForBarber(_ context.Context, barberID string) BarberStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := BarberStats{BarberID: barberID, RatingCounts: map[int]int{}}
	for _, b := range s.state.Bookings {
		if b.BarberID != barberID {
			continue
		}
		st.TotalBookings++
		if b.Status == model.StatusCompleted {
			st.CompletedBookings++
			st.Revenue += b.Service.Price()
		}
	}
	for _, f := range s.state.Feedbacks {
		if f.BarberID == barberID {
			st.RatingCounts[f.Rating]++
		}
	}
	st.AverageRating = averageRating(s.state.Feedbacks, barberID)
	return st
}

// Revenue builds the per-barber revenue breakdown from paid payments.
func (s *EntityStore) Revenue(_ context.Context) RevenueReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lines := map[string]*RevenueLine{}
	var report RevenueReport
	for _, p := range s.state.Payments {
		if p.Status != model.PaymentPaid {
			continue
		}
		report.TotalRevenue += p.Amount
		barberID := ""
		if b, ok := s.state.Bookings[p.BookingID]; ok {
			barberID = b.BarberID
		}
		line, ok := lines[barberID]
		if !ok {
			line = &RevenueLine{BarberID: barberID}
			if u, ok := s.state.Users[barberID]; ok {
				line.BarberName = u.Name
			}
			lines[barberID] = line
		}
		line.Completed++
		line.Revenue += p.Amount
	}
	for _, line := range lines {
		report.ByBarber = append(report.ByBarber, *line)
	}
	sort.Slice(report.ByBarber, func(i, j int) bool {
		return report.ByBarber[i].BarberID < report.ByBarber[j].BarberID
	})
	return report
}

// averageRating computes a mean rating, optionally filtered to one barber,
// rounded to one decimal place.  Returns 0 when no feedback matches.
func averageRating(feedbacks map[string]model.Feedback, barberID string) float64 {
	var sum, n int
	for _, f := range feedbacks {
		if barberID != "" && f.BarberID != barberID {
			continue
		}
		sum += f.Rating
		n++
	}
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*10) / 10
}
