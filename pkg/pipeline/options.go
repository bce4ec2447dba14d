package pipeline

import (
	"time"

	"github.com/agentstation/kolmap/pkg/columns"
	"github.com/agentstation/kolmap/pkg/constants"
	"github.com/agentstation/kolmap/pkg/errors"
	"github.com/agentstation/kolmap/pkg/links"
)

// options configures a Loader.
type options struct {
	masterTab   string
	contractTab string
	activityTab string

	lister      links.Lister
	pdfFolder   string
	photoFolder string

	timeout  time.Duration
	registry *columns.Registry
}

func defaultOptions() *options {
	return &options{
		masterTab:   constants.DefaultMasterTab,
		contractTab: constants.DefaultContractTab,
		activityTab: constants.DefaultActivityTab,
		timeout:     constants.DefaultFetchTimeout,
	}
}

// Option is a function that configures a Loader.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithTabs sets the names of the master, contract and activity tables.
func WithTabs(master, contract, activity string) Option {
	return func(o *options) error {
		for field, v := range map[string]string{"master": master, "contract": contract, "activity": activity} {
			if v == "" {
				return &errors.ValidationError{Field: field + "_tab", Message: "cannot be empty"}
			}
		}
		o.masterTab, o.contractTab, o.activityTab = master, contract, activity
		return nil
	}
}

// WithLinks enables auto links from the given folders. An empty folder
// disables that mapping.
func WithLinks(lister links.Lister, pdfFolder, photoFolder string) Option {
	return func(o *options) error {
		if lister == nil {
			return &errors.ValidationError{Field: "lister", Message: "cannot be nil"}
		}
		o.lister = lister
		o.pdfFolder = pdfFolder
		o.photoFolder = photoFolder
		return nil
	}
}

// WithFetchTimeout bounds each individual fetch. Zero disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return &errors.ValidationError{Field: "timeout", Value: d, Message: "cannot be negative"}
		}
		o.timeout = d
		return nil
	}
}

// WithRegistry overrides the header candidates.
func WithRegistry(r *columns.Registry) Option {
	return func(o *options) error {
		if r == nil {
			return &errors.ValidationError{Field: "registry", Message: "cannot be nil"}
		}
		o.registry = r
		return nil
	}
}
