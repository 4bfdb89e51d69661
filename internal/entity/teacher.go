package entity

type Teacher struct {
	TeacherID      string `json:"teacher_id"`
	TeacherName    string `json:"teacher_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	PasswordDigest string `json:"-"`
	TeacherGender  string `json:"teacher_gender,omitempty"`
	TeacherDept    string `json:"teacher_dept"`
}
