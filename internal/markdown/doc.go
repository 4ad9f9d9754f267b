// Package markdown provides frontmatter extraction and Markdown-to-HTML
// rendering for filesystem-backed blog articles.
package markdown
