package model

// AdminStats backs the admin dashboard header cards. Revenue is broken out
// per currency because USD and IQD amounts are never summed together.
type AdminStats struct {
	TotalAdmins       int     `json:"totalAdmins"`
	TotalDoctors      int     `json:"totalDoctors"`
	TotalPatients     int     `json:"totalPatients"`
	TodayAppointments int     `json:"todayAppointments"`
	USDRevenue        float64 `json:"usdRevenue"`
	IQDRevenue        float64 `json:"iqdRevenue"`
}

type DoctorStats struct {
	TodayAppointments   int     `json:"todayAppointments"`
	TotalPatients       int     `json:"totalPatients"`
	NextAppointmentTime string  `json:"nextAppointmentTime"`
	PendingPaymentsUSD  float64 `json:"pendingPaymentsUSD"`
	PendingPaymentsIQD  float64 `json:"pendingPaymentsIQD"`
}
