package program

import "context"

// Page holds the three regions a program detail page writes into.
type Page struct {
	Title      string `json:"title"`
	DriverName string `json:"driver_name"`
	Details    string `json:"details"`
}

// Confirmer asks the user to confirm message and blocks until answered.
type Confirmer func(message string) bool

type DetailReq struct {
	ProgramID string `form:"id"`
}

type DetailResp struct {
	ProgramID      string `json:"program_id"`
	Scientist      string `json:"scientist"`
	ConfirmMessage string `json:"confirm_message"`
	Page           Page   `json:"page"`
}

type DeleteReq struct {
	ProgramID string `form:"id" uri:"id"`
	Scientist string `form:"scientist"`
	Confirmed bool   `form:"confirmed"`
}

type DeleteResp struct {
	Deleted  bool   `json:"deleted"`
	Location string `json:"location,omitempty"`
}

type TimelineReq struct {
	ProgramID string  `form:"id" binding:"required"`
	Elapsed   float64 `form:"elapsed" binding:"gte=0"`
	Next      int     `form:"next" binding:"gte=0"`
}

type UpcomingSetting struct {
	Message   string `json:"message"`
	TimeUntil string `json:"time_until"`
}

type TimelineResp struct {
	TotalDuration      float64           `json:"total_duration"`
	SecondsLeft        int               `json:"seconds_left"`
	Running            bool              `json:"running"`
	DesiredTemperature *float64          `json:"desired_temperature,omitempty"`
	Upcoming           []UpcomingSetting `json:"upcoming"`
}

type Service interface {
	// Detail loads the page regions. Backend failures leave regions empty and
	// are not returned.
	Detail(ctx context.Context, req *DetailReq) (*DetailResp, error)
	Delete(ctx context.Context, req *DeleteReq) (*DeleteResp, error)
	Timeline(ctx context.Context, req *TimelineReq) (*TimelineResp, error)
}
