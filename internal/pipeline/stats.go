package pipeline

import (
	"path/filepath"
)

// Stats reports, per subdirectory of opts.Root, how many files the pattern
// of opts selects. It runs the same pre-flight checks as Run and never
// writes anything.
func (r *Runner) Stats(opts Options) (*DirectoryStats, error) {
	p, err := r.prepare(Options{Root: opts.Root, Pattern: opts.Pattern, Template: opts.Template})
	if err != nil {
		return nil, err
	}

	dirs, err := r.finder.Subdirectories(p.Root)
	if err != nil {
		return nil, err
	}

	stats := &DirectoryStats{Root: p.Root, Pattern: p.Pattern, TotalSubdirs: len(dirs)}
	for _, dir := range dirs {
		files, err := r.finder.Match(dir, p.Pattern)
		if err != nil {
			return nil, err
		}
		sub := SubdirStats{Name: filepath.Base(dir), Path: dir, FileCount: len(files)}
		for _, f := range files {
			sub.Files = append(sub.Files, filepath.Base(f))
		}
		if len(files) > 0 {
			stats.SubdirsWithFiles++
			stats.TotalFiles += len(files)
		}
		stats.Subdirs = append(stats.Subdirs, sub)
	}
	return stats, nil
}
