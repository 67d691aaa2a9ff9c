package model

// TimeCount is one entry of the popular-times histogram.
type TimeCount struct {
	Time  string `json:"time"`
	Count int    `json:"count"`
}

// PeriodStat is one bucket of the period series: a day, a week or a month
// depending on the selected period.
type PeriodStat struct {
	Date         string  `json:"date"`
	Reservations int     `json:"reservations"`
	Revenue      float64 `json:"revenue"`
}

// ReservationStats is derived from the reservation collection on demand and
// never stored.
type ReservationStats struct {
	TotalReservations  int          `json:"total_reservations"`
	TodayReservations  int          `json:"today_reservations"`
	WeeklyReservations int          `json:"weekly_reservations"`
	MonthlyRevenue     float64      `json:"monthly_revenue"`
	AveragePartySize   float64      `json:"average_party_size"`
	PopularTimes       []TimeCount  `json:"popular_times"`
	DailyStats         []PeriodStat `json:"daily_stats"`
}
