package model

// AccessToken struct holds the access token data
type AccessToken struct {
	Token string `json:"token"`
}

// StudentResponse struct holds the response data for student login or registration
type StudentResponse struct {
	User        Student `json:"user"`
	AccessToken string  `json:"access_token"`
}

// EmployerResponse struct holds the response data for employer login or registration
type EmployerResponse struct {
	User        Employer `json:"user"`
	AccessToken string   `json:"access_token"`
}

// StatsResponse holds the aggregate counters shown on the employer dashboard
type StatsResponse struct {
	TotalJobs         int64 `json:"total_jobs"`
	ActiveJobs        int64 `json:"active_jobs"`
	TotalApplications int64 `json:"total_applications"`
}
