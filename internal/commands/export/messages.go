package exportcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	buildSiteMessageType    = "blog.export.build_site"
	mirrorAssetsMessageType = "blog.export.mirror_assets"
	fixAnchorsMessageType   = "blog.content.fix_anchors"
)

// BuildSiteCommand triggers a full static export. Slugs narrows the run to
// the named posts; DryRun counts work without writing output.
type BuildSiteCommand struct {
	Slugs  []string `json:"slugs,omitempty"`
	DryRun bool     `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate rejects blank slug entries; an empty list means every post.
func (cmd BuildSiteCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Slugs, validation.Each(validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blog.export.build_site.slug_blank", "slug cannot be blank")
			}
			return nil
		}))),
	)
}

// MirrorAssetsCommand copies article image folders into the output tree
// without rebuilding pages.
type MirrorAssetsCommand struct{}

// Type implements command.Message.
func (MirrorAssetsCommand) Type() string { return mirrorAssetsMessageType }

// Validate implements command.Message.
func (MirrorAssetsCommand) Validate() error { return nil }

// FixAnchorsCommand rewrites heading anchors and matching TOC links across
// the Markdown files under Directory.
type FixAnchorsCommand struct {
	// Directory selects the filesystem path holding the Markdown sources.
	Directory string `json:"directory"`
	// DryRun reports which files would change without rewriting them.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (FixAnchorsCommand) Type() string { return fixAnchorsMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd FixAnchorsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("blog.content.fix_anchors.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
