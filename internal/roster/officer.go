package roster

// Officer is a staff member record as served by the personnel backend.
// Everything except the identifier is optional; uniqueness and validity
// are owned by the backend.
type Officer struct {
	ID               string `json:"_id"`
	FirstName        string `json:"firstName,omitempty"`
	MiddleName       string `json:"middleName,omitempty"`
	LastName         string `json:"lastName,omitempty"`
	DOB              string `json:"dob,omitempty"`
	Gender           string `json:"gender,omitempty"`
	MaritalStatus    string `json:"maritalStatus,omitempty"`
	NationalID       string `json:"nationalId,omitempty"`
	EmergencyContact string `json:"emergencyContact,omitempty"`
	Address          string `json:"address,omitempty"`
	Email            string `json:"email,omitempty"`
	PhoneNumber      string `json:"phoneNumber,omitempty"`

	StaffID            string `json:"staffId,omitempty"`
	ServiceNumber      string `json:"serviceNumber,omitempty"`
	Rank               string `json:"rank,omitempty"`
	LevelOfficer       string `json:"levelOfficer,omitempty"`
	Department         string `json:"department,omitempty"`
	AppointmentDate    string `json:"appointmentDate,omitempty"`
	MateType           string `json:"mateType,omitempty"`
	Qualification      string `json:"qualification,omitempty"`
	OtherQualification string `json:"otherQualification,omitempty"`

	BankName      string `json:"bankName,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`

	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// FullName joins the populated name parts with single spaces.
func (o Officer) FullName() string {
	return joinNonEmpty(o.FirstName, o.MiddleName, o.LastName)
}

// Equal reports whether two records carry the same field values. This is
// the change-detection contract for officers: every backend-owned field
// participates, so key ordering in the wire form cannot cause false
// positives.
func (o Officer) Equal(other Officer) bool {
	return o == other
}

// Merge returns a copy of the officer with the non-empty fields of patch
// applied on top. The identifier is never overwritten.
func (o Officer) Merge(patch map[string]string) Officer {
	out := o
	for field, value := range patch {
		switch field {
		case "firstName":
			out.FirstName = value
		case "middleName":
			out.MiddleName = value
		case "lastName":
			out.LastName = value
		case "dob":
			out.DOB = value
		case "gender":
			out.Gender = value
		case "maritalStatus":
			out.MaritalStatus = value
		case "nationalId":
			out.NationalID = value
		case "emergencyContact":
			out.EmergencyContact = value
		case "address":
			out.Address = value
		case "email":
			out.Email = value
		case "phoneNumber":
			out.PhoneNumber = value
		case "staffId":
			out.StaffID = value
		case "serviceNumber":
			out.ServiceNumber = value
		case "rank":
			out.Rank = value
		case "levelOfficer":
			out.LevelOfficer = value
		case "department":
			out.Department = value
		case "appointmentDate":
			out.AppointmentDate = value
		case "mateType":
			out.MateType = value
		case "qualification":
			out.Qualification = value
		case "otherQualification":
			out.OtherQualification = value
		case "bankName":
			out.BankName = value
		case "accountNumber":
			out.AccountNumber = value
		}
	}
	return out
}

func joinNonEmpty(parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}
