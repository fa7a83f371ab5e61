package forms

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"yatube/app/models"
	"yatube/app/repositories"
)

// GroupLookup resolves the group a post form selects.
type GroupLookup interface {
	GetByID(id uint64) (*models.Group, error)
}

// PostPayload is the validated content of a post form.
type PostPayload struct {
	Text    string
	GroupID *uint64
}

// PostForm backs both the create and edit screens.
type PostForm struct {
	Text  string
	Group string

	Errors Errors
	// Groups are the choices for the group select, filled in for rendering.
	Groups []*models.Group
}

type postInput struct {
	Text string `validate:"notblank"`
}

var postFields = map[string]string{"Text": "text"}

// NewPostForm reads a submitted post form.
func NewPostForm(values url.Values) *PostForm {
	return &PostForm{
		Text:   values.Get("text"),
		Group:  strings.TrimSpace(values.Get("group")),
		Errors: Errors{},
	}
}

// PostFormFor pre-fills the form with an existing post, for editing.
func PostFormFor(post *models.Post) *PostForm {
	form := &PostForm{Text: post.Text, Errors: Errors{}}
	if post.GroupID != nil {
		form.Group = strconv.FormatUint(*post.GroupID, 10)
	}
	return form
}

// Validate checks the form. It returns ok=false with Errors filled when the
// input is invalid; err is reserved for lookup failures.
func (f *PostForm) Validate(groups GroupLookup) (PostPayload, bool, error) {
	if f.Errors == nil {
		f.Errors = Errors{}
	}

	in := postInput{Text: f.Text}
	if err := collect(f.Errors, models.Validator().Struct(in), postFields); err != nil {
		return PostPayload{}, false, err
	}

	payload := PostPayload{Text: strings.TrimSpace(f.Text)}
	if f.Group != "" {
		id, err := strconv.ParseUint(f.Group, 10, 64)
		if err != nil || id == 0 {
			f.Errors.Add("group", invalidChoice)
		} else if _, err := groups.GetByID(id); err != nil {
			if !errors.Is(err, repositories.ErrNotFound) {
				return PostPayload{}, false, err
			}
			f.Errors.Add("group", invalidChoice)
		} else {
			payload.GroupID = &id
		}
	}

	if f.Errors.Any() {
		return PostPayload{}, false, nil
	}
	return payload, true, nil
}

// Selected reports whether the group option with id is the current choice.
func (f *PostForm) Selected(id uint64) bool {
	return f.Group == strconv.FormatUint(id, 10)
}

const invalidChoice = "Select a valid choice. That choice is not one of the available choices."
