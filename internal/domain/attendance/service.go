package attendance

import "context"

type AttendanceService interface {
	// CheckIn records the authenticated employee's arrival for today.
	CheckIn(ctx context.Context, req CheckInRequest) (Attendance, error)

	// CheckOut records the authenticated employee's departure and finalizes
	// the day's status.
	CheckOut(ctx context.Context, req CheckOutRequest) (Attendance, error)

	// ScanQR toggles check-in or check-out for the badge owner. Called by
	// gate terminals operated by a VIGILE account.
	ScanQR(ctx context.Context, req QRScanRequest) (QRScanResponse, error)

	// Override lets an admin correct or create a day's record by hand.
	Override(ctx context.Context, req ManualOverrideRequest) (Attendance, error)

	// GetToday returns the authenticated employee's record for today, if any.
	GetToday(ctx context.Context) (Attendance, error)

	// ListMine returns the authenticated employee's own history.
	ListMine(ctx context.Context, filter ListAttendanceFilter) ([]Attendance, int, error)

	// List returns company-wide attendance for managers.
	List(ctx context.Context, filter ListAttendanceFilter) ([]Attendance, int, error)

	GetRules(ctx context.Context) (Rules, error)
	UpdateRules(ctx context.Context, req UpdateRulesRequest) (Rules, error)
}
