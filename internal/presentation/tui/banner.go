package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the markov banner to w in the given color profile.
func PrintBanner(w io.Writer, p termenv.Profile) {
	lines := []struct {
		text  string
		color string
	}{
		{" _ __ ___   __ _ _ __| | _______   __", "#818cf8"},
		{"| '_ ` _ \\ / _` | '__| |/ / _ \\ \\ / /", "#a78bfa"},
		{"| | | | | | (_| | |  |   < (_) \\ V / ", "#e879f9"},
		{"|_| |_| |_|\\__,_|_|  |_|\\_\\___/ \\_/  ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
