package v1

type AttendanceClient struct {
	Transport  *Transport
	Attendance *AttendanceEndpoint
}

func NewAttendanceClient(baseURL string, token string) *AttendanceClient {
	t := NewTransport(baseURL, token)
	return &AttendanceClient{
		Transport:  t,
		Attendance: &AttendanceEndpoint{transport: t},
	}
}
