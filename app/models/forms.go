package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// PostForm carries user input for creating or editing a post. Length bounds
// are enforced here, before anything reaches the persistence layer.
type PostForm struct {
	Title       string `validate:"min=1,max=100"`
	Description string `validate:"min=1,max=400"`
	Song        string `validate:"min=1,max=80"`
	Artist      string `validate:"min=1,max=80"`
}

// CommentForm carries user input for a comment.
type CommentForm struct {
	Comment string `validate:"min=1,max=200"`
}

// SigninForm carries submitted credentials.
type SigninForm struct {
	Username string `validate:"min=1,max=100"`
	Password string `validate:"min=1,max=100"`
}

var postFieldLimits = map[string]struct {
	label string
	min   int
	max   int
}{
	"Title":       {"title", 1, 100},
	"Description": {"description", 1, 400},
	"Song":        {"song", 1, 80},
	"Artist":      {"artist", 1, 80},
}

// Validate trims the fields and returns one message per violated bound.
func (f *PostForm) Validate() []string {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	f.Song = strings.TrimSpace(f.Song)
	f.Artist = strings.TrimSpace(f.Artist)

	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var msgs []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		limits := postFieldLimits[fieldErr.Field()]
		switch fieldErr.Tag() {
		case "min":
			msgs = append(msgs, fmt.Sprintf("Post %s is required. Minimum %d character(s).", limits.label, limits.min))
		case "max":
			msgs = append(msgs, fmt.Sprintf("Post %s is too long. Max %d characters", limits.label, limits.max))
		}
	}
	return msgs
}

// Validate trims the comment and returns one message per violated bound.
func (f *CommentForm) Validate() []string {
	f.Comment = strings.TrimSpace(f.Comment)

	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var msgs []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		switch fieldErr.Tag() {
		case "min":
			msgs = append(msgs, "Comment text is required. Minimum 1 character.")
		case "max":
			msgs = append(msgs, "Comment is too long. Maximum 200 characters.")
		}
	}
	return msgs
}

// Validate trims the credentials and returns one message per violated bound.
func (f *SigninForm) Validate() []string {
	f.Username = strings.TrimSpace(f.Username)
	f.Password = strings.TrimSpace(f.Password)

	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var msgs []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		switch {
		case fieldErr.Field() == "Username" && fieldErr.Tag() == "min":
			msgs = append(msgs, "Please enter your username.")
		case fieldErr.Field() == "Username" && fieldErr.Tag() == "max":
			msgs = append(msgs, "Username cannot be longer than 100 characters")
		case fieldErr.Field() == "Password" && fieldErr.Tag() == "min":
			msgs = append(msgs, "Please enter your password.")
		case fieldErr.Field() == "Password" && fieldErr.Tag() == "max":
			msgs = append(msgs, "Password cannot be longer than 100 characters")
		}
	}
	return msgs
}
