package navbar

import (
	"context"

	"github.com/pkg/errors"
)

type Modal struct {
	TemplateURL string `json:"templateUrl"`
	Model       any    `json:"model"`
	Title       string `json:"title"`
	BigModal    bool   `json:"bigModal"`
}

const (
	UserDetailsTemplateURL = "user-details.html"
	UserDetailsTitle       = "title_user_details"
)

// ShowUserDetails opens the user details modal with the given model.
func (n *Navbar) ShowUserDetails(ctx context.Context, model any) error {
	if n.modals == nil {
		return errors.New("no modal service configured")
	}

	modal := Modal{
		TemplateURL: UserDetailsTemplateURL,
		Model:       model,
		Title:       UserDetailsTitle,
		BigModal:    true,
	}

	if err := n.modals.Open(ctx, modal); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
