package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"yatube/app/auth"
	"yatube/app/forms"
	"yatube/app/models"
	"yatube/app/paginator"
	"yatube/app/repositories"
	"yatube/app/services"
	"yatube/app/views"
)

const loginURL = "/auth/login/"

// PostController handles HTTP requests for posts and feeds
type PostController struct {
	postService *services.PostService
	templates   *views.Templates
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, templates *views.Templates) *PostController {
	return &PostController{postService: postService, templates: templates}
}

type feedData struct {
	base
	Page services.FeedPage
}

type groupData struct {
	base
	Group *models.Group
	Page  services.FeedPage
}

type profileData struct {
	base
	Author     *models.User
	PostsCount int
	Page       services.FeedPage
}

type detailData struct {
	base
	Post             *models.Post
	AuthorPostsCount int
	CanEdit          bool
}

type formData struct {
	base
	Form   *forms.PostForm
	IsEdit bool
	Action string
}

// Index handles the global feed
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	page, err := pc.postService.ListAll(pageNumber(r))
	if err != nil {
		serverError(w, r, err)
		return
	}
	render(w, r, pc.templates, "posts/index", http.StatusOK, feedData{base: baseFor(r), Page: page})
}

// GroupPosts handles the feed of one group
func (pc *PostController) GroupPosts(w http.ResponseWriter, r *http.Request) {
	feed, err := pc.postService.ListByGroup(mux.Vars(r)["slug"], pageNumber(r))
	if errors.Is(err, repositories.ErrNotFound) {
		notFound(w, r, pc.templates)
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	render(w, r, pc.templates, "posts/group_list", http.StatusOK, groupData{
		base:  baseFor(r),
		Group: feed.Group,
		Page:  feed.Page,
	})
}

// Profile handles the feed of one author
func (pc *PostController) Profile(w http.ResponseWriter, r *http.Request) {
	feed, err := pc.postService.ListByAuthor(mux.Vars(r)["username"], pageNumber(r))
	if errors.Is(err, repositories.ErrNotFound) {
		notFound(w, r, pc.templates)
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	render(w, r, pc.templates, "posts/profile", http.StatusOK, profileData{
		base:       baseFor(r),
		Author:     feed.Author,
		PostsCount: feed.PostsCount,
		Page:       feed.Page,
	})
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		notFound(w, r, pc.templates)
		return
	}
	detail, err := pc.postService.GetPost(id)
	if errors.Is(err, repositories.ErrNotFound) {
		notFound(w, r, pc.templates)
		return
	}
	if err != nil {
		serverError(w, r, err)
		return
	}
	b := baseFor(r)
	render(w, r, pc.templates, "posts/post_detail", http.StatusOK, detailData{
		base:             b,
		Post:             detail.Post,
		AuthorPostsCount: detail.AuthorPostsCount,
		CanEdit:          services.CanEdit(b.User, detail.Post),
	})
}

// Create shows and handles the new post form
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	caller := auth.UserFromContext(r.Context())
	if !services.CanCreate(caller) {
		redirect(w, r, loginURL+"?next="+r.URL.Path)
		return
	}

	form := &forms.PostForm{Errors: forms.Errors{}}
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}
		form = forms.NewPostForm(r.PostForm)
		payload, ok, err := form.Validate(pc.postService.GroupLookup())
		if err != nil {
			serverError(w, r, err)
			return
		}
		if ok {
			if _, err := pc.postService.CreatePost(caller, payload); err != nil {
				serverError(w, r, err)
				return
			}
			redirect(w, r, "/profile/"+caller.Username+"/")
			return
		}
	}

	pc.renderForm(w, r, form, false, "/create/")
}

// Edit shows and handles the edit form of an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		notFound(w, r, pc.templates)
		return
	}
	caller := auth.UserFromContext(r.Context())
	detailURL := fmt.Sprintf("/posts/%d/", id)

	post, err := pc.postService.EditablePost(caller, id)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		notFound(w, r, pc.templates)
		return
	case errors.Is(err, services.ErrForbidden):
		redirect(w, r, detailURL)
		return
	case err != nil:
		serverError(w, r, err)
		return
	}

	form := forms.PostFormFor(post)
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Failed to parse form", http.StatusBadRequest)
			return
		}
		form = forms.NewPostForm(r.PostForm)
		payload, ok, err := form.Validate(pc.postService.GroupLookup())
		if err != nil {
			serverError(w, r, err)
			return
		}
		if ok {
			if _, err := pc.postService.UpdatePost(caller, id, payload); err != nil {
				serverError(w, r, err)
				return
			}
			redirect(w, r, detailURL)
			return
		}
	}

	pc.renderForm(w, r, form, true, detailURL+"edit/")
}

func (pc *PostController) renderForm(w http.ResponseWriter, r *http.Request, form *forms.PostForm, isEdit bool, action string) {
	groups, err := pc.postService.Groups()
	if err != nil {
		serverError(w, r, err)
		return
	}
	form.Groups = groups
	render(w, r, pc.templates, "posts/create_post", http.StatusOK, formData{
		base:   baseFor(r),
		Form:   form,
		IsEdit: isEdit,
		Action: action,
	})
}

func pageNumber(r *http.Request) int {
	return paginator.ParseNumber(r.URL.Query().Get("page"))
}

func postID(r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
