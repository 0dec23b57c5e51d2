package facility

import "time"

// Payload is the canonical attribute set delivered by upstream. Nothing in it is locally authored
type Payload struct {
	ID             ID        `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	Classification string    `json:"classification,omitempty" yaml:"classification"`
	Website        string    `json:"website,omitempty" yaml:"website"`
	TimeZone       string    `json:"time_zone,omitempty" yaml:"time_zone"`
	Visn           string    `json:"visn,omitempty" yaml:"visn"`
	Mobile         *bool     `json:"mobile,omitempty" yaml:"mobile"`
	Address        Addresses `json:"address" yaml:"address"`
	Latitude       *float64  `json:"lat,omitempty" yaml:"lat"`
	Longitude      *float64  `json:"long,omitempty" yaml:"long"`
	Phone          Phone     `json:"phone" yaml:"phone"`
	Hours          Hours     `json:"hours" yaml:"hours"`
	Services       Services  `json:"services" yaml:"services"`

	OperationalHoursSpecialInstructions string `json:"operational_hours_special_instructions,omitempty" yaml:"operational_hours_special_instructions"`
}

// Addresses pairs the physical and mailing address; either may be absent
type Addresses struct {
	Physical *Address `json:"physical,omitempty" yaml:"physical"`
	Mailing  *Address `json:"mailing,omitempty" yaml:"mailing"`
}

// Address is a postal address. Address1..3 are street lines
type Address struct {
	Address1 string `json:"address_1,omitempty" yaml:"address_1"`
	Address2 string `json:"address_2,omitempty" yaml:"address_2"`
	Address3 string `json:"address_3,omitempty" yaml:"address_3"`
	City     string `json:"city,omitempty" yaml:"city"`
	State    string `json:"state,omitempty" yaml:"state"`
	Zip      string `json:"zip,omitempty" yaml:"zip"`
}

// Phone lists the published numbers
type Phone struct {
	Main                  string `json:"main,omitempty" yaml:"main"`
	Fax                   string `json:"fax,omitempty" yaml:"fax"`
	AfterHours            string `json:"after_hours,omitempty" yaml:"after_hours"`
	Pharmacy              string `json:"pharmacy,omitempty" yaml:"pharmacy"`
	PatientAdvocate       string `json:"patient_advocate,omitempty" yaml:"patient_advocate"`
	MentalHealthClinic    string `json:"mental_health_clinic,omitempty" yaml:"mental_health_clinic"`
	EnrollmentCoordinator string `json:"enrollment_coordinator,omitempty" yaml:"enrollment_coordinator"`
}

// Hours holds free-text opening hours per weekday, e.g. "800AM-430PM" or "Closed"
type Hours struct {
	Monday    string `json:"monday,omitempty" yaml:"monday"`
	Tuesday   string `json:"tuesday,omitempty" yaml:"tuesday"`
	Wednesday string `json:"wednesday,omitempty" yaml:"wednesday"`
	Thursday  string `json:"thursday,omitempty" yaml:"thursday"`
	Friday    string `json:"friday,omitempty" yaml:"friday"`
	Saturday  string `json:"saturday,omitempty" yaml:"saturday"`
	Sunday    string `json:"sunday,omitempty" yaml:"sunday"`
}

// Day returns the entry for a weekday
func (h Hours) Day(d time.Weekday) string {
	switch d {
	case time.Monday:
		return h.Monday
	case time.Tuesday:
		return h.Tuesday
	case time.Wednesday:
		return h.Wednesday
	case time.Thursday:
		return h.Thursday
	case time.Friday:
		return h.Friday
	case time.Saturday:
		return h.Saturday
	default:
		return h.Sunday
	}
}

// Services is the upstream service-type set
type Services struct {
	Health      []string   `json:"health,omitempty" yaml:"health"`
	Benefits    []string   `json:"benefits,omitempty" yaml:"benefits"`
	Other       []string   `json:"other,omitempty" yaml:"other"`
	LastUpdated *time.Time `json:"last_updated,omitempty" yaml:"last_updated"`
}
