package entity

// Student is an identity record with a role-scoped primary key.
// PasswordDigest only ever holds hasher output, never a plaintext secret.
type Student struct {
	StudentID      string `json:"student_id"`
	StudentName    string `json:"student_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	PasswordDigest string `json:"-"`
	StudentGender  string `json:"student_gender,omitempty"`
	StudentDept    string `json:"student_dept"`
}
