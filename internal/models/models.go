package models

// Role determines which side of the system a user can reach: operators
// record work sessions, admins manage the fleet and view reports.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleOperator Role = "OPERATOR"
)

// User is an operator or administrator. The PIN is a short numeric string
// matched verbatim at login; it is stored in plaintext.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
	PIN  string `json:"pin"`
}

// Tractor is one machine in the fleet. CurrentHorimeter is a cached value:
// it tracks the end horimeter of the most recently recorded work log for the
// machine, or whatever an admin set by hand when no logs exist yet.
type Tractor struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Model               string  `json:"model"`
	CurrentHorimeter    float64 `json:"currentHorimeter"`
	ExpectedConsumption float64 `json:"expectedConsumption"` // liters per hour target
	LastUpdateDate      string  `json:"lastUpdateDate,omitempty"` // YYYY-MM-DD
}

// ServiceType is an advisory catalog entry. Work logs carry a free-typed
// service name and are not constrained to this catalog.
type ServiceType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// WorkLog is one operator-submitted usage session. Logs are append-only and
// immutable once recorded. OperatorName, TractorName and ServiceName are
// snapshots taken at creation time; renaming the source records later does
// not rewrite history.
type WorkLog struct {
	ID                  string  `json:"id"`
	OperatorID          string  `json:"operatorId"`
	OperatorName        string  `json:"operatorName"`
	TractorID           string  `json:"tractorId"`
	TractorName         string  `json:"tractorName"`
	ServiceID           string  `json:"serviceId"`
	ServiceName         string  `json:"serviceName"`
	ServiceDescription  string  `json:"serviceDescription"`
	Date                string  `json:"date"` // YYYY-MM-DD
	StartHorimeter      float64 `json:"startHorimeter"`
	EndHorimeter        float64 `json:"endHorimeter"`
	StartHorimeterPhoto string  `json:"startHorimeterPhoto"` // base64 data URL
	EndHorimeterPhoto   string  `json:"endHorimeterPhoto"`   // base64 data URL
	FuelLiters          float64 `json:"fuelLiters"`
	Notes               string  `json:"notes"`
	TotalHours          float64 `json:"totalHours"`
	CreatedAt           string  `json:"createdAt"` // RFC 3339
}

// Config is the single remote-mirror configuration record. It is overwritten
// wholesale on save; there is no history.
type Config struct {
	RemoteEndpointURL string `json:"remoteEndpointUrl"`
	AutoSyncEnabled   bool   `json:"autoSyncEnabled"`
}
