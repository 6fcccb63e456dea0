package dto

// LoginForm is posted by the login tab of /auth
type LoginForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

// SignUpForm is posted by the sign-up tab of /auth
type SignUpForm struct {
	FullName string `form:"full_name" binding:"required,min=2,max=100"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
	Birthday string `form:"birthday" binding:"omitempty,datetime=2006-01-02"`
}

// ProfileForm edits the caller's own profile
type ProfileForm struct {
	FullName string `form:"full_name" binding:"required,min=2,max=100"`
	Bio      string `form:"bio" binding:"max=1000"`
	Phone    string `form:"phone" binding:"omitempty,max=30,phone"`
	Location string `form:"location" binding:"max=120"`
	Birthday string `form:"birthday" binding:"omitempty,datetime=2006-01-02"`
}
