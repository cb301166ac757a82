package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/aretw0/quire"
)

const shortIDLen = 8

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func tagLabels(tags []quire.Tag) string {
	labels := make([]string, len(tags))
	for i, t := range tags {
		labels[i] = "#" + t.Label
	}
	return strings.Join(labels, " ")
}

// printNotes writes one line per note: short id, title, tags.
func printNotes(w io.Writer, notes []quire.Note) {
	for _, n := range notes {
		line := color.HiBlackString(shortID(n.ID)) + "  " + color.New(color.Bold).Sprint(n.Title)
		if len(n.Tags) > 0 {
			line += "  " + color.CyanString(tagLabels(n.Tags))
		}
		fmt.Fprintln(w, line)
	}
}

func printNote(w io.Writer, n quire.Note) {
	fmt.Fprintln(w, color.New(color.Bold).Sprint(n.Title))
	fmt.Fprintln(w, color.HiBlackString(n.ID))
	if len(n.Tags) > 0 {
		fmt.Fprintln(w, color.CyanString(tagLabels(n.Tags)))
	}
	if n.Markdown != "" {
		fmt.Fprintln(w)
		fmt.Fprint(w, n.Markdown)
		if !strings.HasSuffix(n.Markdown, "\n") {
			fmt.Fprintln(w)
		}
	}
}

// printTags writes one line per tag with the number of notes showing it.
func printTags(w io.Writer, tags []quire.Tag, notes []quire.Note) {
	for _, t := range tags {
		count := 0
		for _, n := range notes {
			if n.HasTag(t.ID) {
				count++
			}
		}
		fmt.Fprintf(w, "%s  %s  %s\n",
			color.HiBlackString(shortID(t.ID)),
			color.CyanString("#"+t.Label),
			color.HiBlackString("(%d)", count))
	}
}
