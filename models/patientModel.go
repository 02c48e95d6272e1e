package models

import (
	"time"
)

// Patient model
type Patient struct {
	ID                   int64      `gorm:"primaryKey;column:id" json:"id"`
	PatientNumber        string     `gorm:"size:20;not null;unique;index;column:patient_number" json:"patient_number"`
	FirstName            string     `gorm:"column:first_name;size:50;not null" json:"first_name"`
	LastName             string     `gorm:"column:last_name;size:50;not null;index" json:"last_name"`
	Email                string     `gorm:"column:email;size:100;index" json:"email"`
	Phone                string     `gorm:"column:phone;size:20" json:"phone"`
	DateOfBirth          time.Time  `gorm:"column:date_of_birth;not null" json:"date_of_birth"`
	Gender               string     `gorm:"column:gender;size:10;check:gender IN ('male', 'female', 'other');not null" json:"gender"`
	BloodGroup           string     `gorm:"column:blood_group;size:3" json:"blood_group"`
	Address              string     `gorm:"column:address;type:text" json:"address"`
	EmergencyContact     string     `gorm:"column:emergency_contact;size:20" json:"emergency_contact"`
	EmergencyContactName string     `gorm:"column:emergency_contact_name;size:100" json:"emergency_contact_name"`
	InsuranceProvider    string     `gorm:"column:insurance_provider;size:100" json:"insurance_provider"`
	InsuranceNumber      string     `gorm:"column:insurance_number;size:50" json:"insurance_number"`
	MedicalHistory       string     `gorm:"column:medical_history;type:text" json:"medical_history"`
	Allergies            string     `gorm:"column:allergies;type:text" json:"allergies"`
	CreatedAt            time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Appointments   []Appointment   `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	MedicalRecords []MedicalRecord `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Prescriptions  []Prescription  `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Bills          []Bill          `gorm:"foreignKey:PatientID;references:ID" json:"-"`
}

func (Patient) TableName() string {
	return "patients"
}

// Doctor model; linked one-to-one with a staff identity.
type Doctor struct {
	ID               int64     `gorm:"primaryKey;column:id" json:"id"`
	UserID           int64     `gorm:"column:user_id;not null;unique;index" json:"user_id"`
	Specialization   string    `gorm:"column:specialization;size:100;not null" json:"specialization"`
	LicenseNumber    string    `gorm:"column:license_number;size:50;not null;unique" json:"license_number"`
	ExperienceYears  int       `gorm:"column:experience_years" json:"experience_years"`
	ConsultationFee  float64   `gorm:"column:consultation_fee;default:0" json:"consultation_fee"`
	Education        string    `gorm:"column:education;size:200" json:"education"`
	Certifications   string    `gorm:"column:certifications;size:500" json:"certifications"`
	Bio              string    `gorm:"column:bio;size:1000" json:"bio"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	User           User            `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Appointments   []Appointment   `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	MedicalRecords []MedicalRecord `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
	Prescriptions  []Prescription  `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// Appointment model
type Appointment struct {
	ID              int64     `gorm:"primaryKey;column:id" json:"id"`
	AppointmentDate time.Time `gorm:"column:appointment_date;not null;index" json:"appointment_date"`
	PatientID       int64     `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID        int64     `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	Duration        int       `gorm:"column:duration;default:30" json:"duration"`
	Status          string    `gorm:"column:status;size:20;default:scheduled" json:"status"`
	Reason          string    `gorm:"column:reason;type:text" json:"reason"`
	Notes           string    `gorm:"column:notes;type:text" json:"notes"`
	CreatedBy       int64     `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Patient Patient `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// MedicalRecord model
type MedicalRecord struct {
	ID            int64      `gorm:"primaryKey;column:id" json:"id"`
	PatientID     int64      `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID      int64      `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	RecordDate    time.Time  `gorm:"column:record_date;not null" json:"record_date"`
	Diagnosis     string     `gorm:"column:diagnosis;type:text" json:"diagnosis"`
	Symptoms      string     `gorm:"column:symptoms;type:text" json:"symptoms"`
	TreatmentPlan string     `gorm:"column:treatment_plan;type:text" json:"treatment_plan"`
	Medications   string     `gorm:"column:medications;type:text" json:"medications"`
	TestResults   string     `gorm:"column:test_results;type:text" json:"test_results"`
	VitalSigns    string     `gorm:"column:vital_signs;type:text" json:"vital_signs"`
	Notes         string     `gorm:"column:notes;type:text" json:"notes"`
	FollowUpDate  *time.Time `gorm:"column:follow_up_date" json:"follow_up_date"`
	CreatedBy     int64      `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt     time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Patient Patient `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}

// Prescription model
type Prescription struct {
	ID                 int64     `gorm:"primaryKey;column:id" json:"id"`
	PatientID          int64     `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID           int64     `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	PrescriptionDate   time.Time `gorm:"column:prescription_date;not null" json:"prescription_date"`
	Medications        string    `gorm:"column:medications;type:text;not null" json:"medications"`
	DosageInstructions string    `gorm:"column:dosage_instructions;type:text" json:"dosage_instructions"`
	Duration           string    `gorm:"column:duration;size:50" json:"duration"`
	RefillsAllowed     int       `gorm:"column:refills_allowed;default:0" json:"refills_allowed"`
	Notes              string    `gorm:"column:notes;type:text" json:"notes"`
	Status             string    `gorm:"column:status;size:20;default:active" json:"status"`
	CreatedBy          int64     `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt          time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Patient Patient `gorm:"foreignKey:PatientID;references:ID" json:"-"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID;references:ID" json:"-"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}
