package profile

// Default fixed allowances, applied whenever the stored value is absent or
// zero (rows written by older clients carry zeros in these cells).
const (
	DefaultMedical   = 750.0
	DefaultTransport = 450.0
	DefaultFood      = 1250.0
)

// Profile is a user's salary configuration. At most one row per user exists
// in the Profiles partition.
type Profile struct {
	UserID      string `json:"id"`
	Name        string `json:"name,omitempty"`
	Company     string `json:"company,omitempty"`
	CardNo      string `json:"cardNo,omitempty"`
	Section     string `json:"section,omitempty"`
	Designation string `json:"designation,omitempty"`
	Grade       string `json:"grade,omitempty"`

	BasicSalary    float64 `json:"basicSalary"`
	HouseRent      float64 `json:"houseRent"`
	Medical        float64 `json:"medical"`
	Transport      float64 `json:"transport"`
	Food           float64 `json:"food"`
	OTRate         float64 `json:"otRate"`
	PresentBonus   float64 `json:"presentBonus"`
	NightAllowance float64 `json:"nightAllowance"`
	TiffinBill     float64 `json:"tiffinBill"`

	// MedicalTransport is the combined allowance value kept for clients
	// built against the old single-field schema. Computed, never stored.
	MedicalTransport float64 `json:"medicalTransport"`

	ProfileImage string `json:"profileImage,omitempty"`

	// Complete is false when no profile row exists yet. A missing profile
	// is a normal state for new users, not an error.
	Complete bool `json:"profileComplete"`
}

// DailyGross is one thirtieth of the gross salary (basic + house rent +
// fixed allowances), the amount earned on a regular working day.
func (p Profile) DailyGross() float64 {
	return (p.BasicSalary + p.HouseRent + p.Medical + p.Transport + p.Food) / 30
}

const Partition = "Profiles"

const (
	ColID = iota
	ColName
	ColCompany
	ColCardNo
	ColSection
	ColDesignation
	ColGrade
	ColBasicSalary
	ColHouseRent
	ColMedical
	ColTransport
	ColFood
	ColOTRate
	ColPresentBonus
	ColNightAllowance
	ColTiffinBill
	ColProfileImage
	ColUpdated
)

var PartitionHeader = []string{
	"ID", "Name", "Company", "CardNo", "Section", "Designation", "Grade",
	"BasicSalary", "HouseRent", "Medical", "Transport", "Food", "OTRate",
	"PresentBonus", "NightAllowance", "TiffinBill", "ProfileImage", "Updated",
}
