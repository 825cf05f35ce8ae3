package shell

import (
	"errors"
	"strings"
	"sync"

	"primoboost-be/internal/entity"
)

var ErrRouteNotFound = errors.New("route not found")
var ErrAdminOnly = errors.New("route requires admin role")

// Page is what a route resolves to. Page internals live outside the shell;
// the shell only needs a stable name to hand to the frontend.
type Page struct {
	Name string `json:"name"`
}

// PageFactory loads a page on first navigation. Factories run at most once
// per route; the result is cached, including a load error.
type PageFactory func() (*Page, error)

func StaticPage(name string) PageFactory {
	return func() (*Page, error) {
		return &Page{Name: name}, nil
	}
}

type route struct {
	pattern   string
	segments  []string
	adminOnly bool
	factory   PageFactory

	once sync.Once
	page *Page
	err  error
}

func (r *route) load() (*Page, error) {
	r.once.Do(func() {
		r.page, r.err = r.factory()
	})
	return r.page, r.err
}

// matches reports whether path matches the route pattern and returns the
// values bound to ":param" segments.
func (r *route) matches(path string) (map[string]string, bool) {
	segments := splitPath(path)
	if len(segments) != len(r.segments) {
		return nil, false
	}
	var params map[string]string
	for i, pat := range r.segments {
		if strings.HasPrefix(pat, ":") {
			if params == nil {
				params = make(map[string]string)
			}
			params[pat[1:]] = segments[i]
			continue
		}
		if pat != segments[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// ResolvedRoute is the outcome of dispatching a path.
type ResolvedRoute struct {
	Pattern string
	Page    *Page
	Params  map[string]string
}

type Router struct {
	routes []*route
}

func NewRouter() *Router {
	r := &Router{}
	r.registerDefaults()
	return r
}

func (r *Router) Register(pattern string, factory PageFactory) {
	r.register(pattern, false, factory)
}

func (r *Router) RegisterAdmin(pattern string, factory PageFactory) {
	r.register(pattern, true, factory)
}

func (r *Router) register(pattern string, adminOnly bool, factory PageFactory) {
	r.routes = append(r.routes, &route{
		pattern:   pattern,
		segments:  splitPath(pattern),
		adminOnly: adminOnly,
		factory:   factory,
	})
}

// Resolve dispatches a path in registration order. Admin-only routes check
// the user's role before the page factory runs.
func (r *Router) Resolve(path string, user *entity.User) (*ResolvedRoute, error) {
	for _, rt := range r.routes {
		params, ok := rt.matches(path)
		if !ok {
			continue
		}
		if rt.adminOnly {
			if user == nil || user.Role != entity.UserRoleAdmin {
				return nil, ErrAdminOnly
			}
		}
		page, err := rt.load()
		if err != nil {
			return nil, err
		}
		return &ResolvedRoute{
			Pattern: rt.pattern,
			Page:    page,
			Params:  params,
		}, nil
	}
	return nil, ErrRouteNotFound
}

func (r *Router) registerDefaults() {
	r.Register("/", StaticPage("home"))
	r.Register("/optimizer", StaticPage("resume_optimizer"))
	r.Register("/score-checker", StaticPage("resume_score_checker"))
	r.Register("/ats-16-parameter", StaticPage("ats_score_checker_16"))
	r.Register("/ats-16-parameter-advanced", StaticPage("ats_score_checker_16_advanced"))
	r.Register("/guided-builder", StaticPage("guided_resume_builder"))
	r.Register("/linkedin-generator", StaticPage("linkedin_message_generator"))
	r.Register("/portfolio-builder", StaticPage("portfolio_builder"))
	r.Register("/mock-interview", StaticPage("mock_interview"))
	r.Register("/resume-interview", StaticPage("resume_based_interview"))
	r.Register("/realistic-interview", StaticPage("unified_interview"))
	r.Register("/smart-interview", StaticPage("smart_interview"))
	r.Register("/about", StaticPage("about_us"))
	r.Register("/contact", StaticPage("contact"))
	r.Register("/tutorials", StaticPage("tutorials"))
	r.Register("/all-tools", StaticPage("tools_navigation"))
	r.Register("/pricing", StaticPage("pricing"))
	r.Register("/careers", StaticPage("careers"))
	r.Register("/careers/:jobId", StaticPage("job_details"))
	r.Register("/jobs", StaticPage("jobs"))
	r.Register("/jobs/applications", StaticPage("my_applications"))
	r.Register("/jobs/:jobId", StaticPage("job_details"))
	r.Register("/jobs/:jobId/apply", StaticPage("job_application"))
	r.Register("/jobs/:jobId/apply-form", StaticPage("job_application_form"))
	r.Register("/webinar-details/:registrationId", StaticPage("webinar_details"))
	r.Register("/my-webinars", StaticPage("my_webinars"))
	r.Register("/gaming", StaticPage("gaming_aptitude"))
	r.Register("/gaming/:companyId", StaticPage("company_game"))
	r.Register("/pathfinder", StaticPage("pathfinder"))
	r.Register("/cognitive-pathfinder", StaticPage("cognitive_pathfinder"))
	r.Register("/key-finder", StaticPage("key_finder"))
	r.Register("/bubble-selection", StaticPage("bubble_selection"))
	r.Register("/spatial-reasoning", StaticPage("spatial_reasoning"))
	r.Register("/profile", StaticPage("user_profile"))
	r.Register("/reset-password", StaticPage("reset_password"))
	r.Register("/session", StaticPage("session_landing"))
	r.Register("/session/book", StaticPage("session_booking"))
	r.Register("/my-bookings", StaticPage("my_bookings"))
	r.Register("/blog", StaticPage("blog"))
	r.Register("/blog/:slug", StaticPage("blog_post"))
	r.Register("/webinars", StaticPage("webinars"))
	r.Register("/webinar/:slug", StaticPage("webinar_landing"))

	r.RegisterAdmin("/admin", StaticPage("admin_home"))
	r.RegisterAdmin("/admin/dashboard", StaticPage("admin_dashboard"))
	r.RegisterAdmin("/admin/sessions", StaticPage("admin_session_schedule"))
	r.RegisterAdmin("/admin/jobs", StaticPage("admin_jobs"))
	r.RegisterAdmin("/admin/jobs/new", StaticPage("admin_job_upload"))
	r.RegisterAdmin("/admin/jobs/:jobId/edit", StaticPage("admin_job_edit"))
	r.RegisterAdmin("/admin/users", StaticPage("admin_users"))
	r.RegisterAdmin("/admin/blog", StaticPage("admin_blog_posts"))
	r.RegisterAdmin("/admin/blog/new", StaticPage("admin_blog_post_new"))
	r.RegisterAdmin("/admin/blog/edit/:id", StaticPage("admin_blog_post_edit"))
	r.RegisterAdmin("/admin/blog/categories", StaticPage("admin_blog_categories"))
	r.RegisterAdmin("/admin/email-testing", StaticPage("admin_email_testing"))
	r.RegisterAdmin("/admin/webinars", StaticPage("admin_webinars"))
}
