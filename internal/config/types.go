// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package config

// Config is the typed view of nitrokit.yaml.
type Config struct {
	ProjectName   string `mapstructure:"project_name" yaml:"project_name"`
	GitRemote     string `mapstructure:"git_remote" yaml:"git_remote"`
	ReleaseFormat string `mapstructure:"release_format" yaml:"release_format"`
	Language      string `mapstructure:"language" yaml:"language"`
	UpdateCheck   bool   `mapstructure:"update_check" yaml:"update_check"`

	Database    Database    `mapstructure:"database" yaml:"database"`
	Quality     Quality     `mapstructure:"quality" yaml:"quality"`
	Translation Translation `mapstructure:"translation" yaml:"translation"`
	Release     Release     `mapstructure:"release" yaml:"release"`
}

// Database selects the backend of the settings store. An empty Dsn means
// "resolve the default sqlite file in the data directory".
type Database struct {
	Type string `mapstructure:"type" yaml:"type"`
	Dsn  string `mapstructure:"dsn" yaml:"dsn"`
}

type Quality struct {
	EnabledChecks    []string `mapstructure:"enabled_checks" yaml:"enabled_checks"`
	SkipDependencies bool     `mapstructure:"skip_dependencies" yaml:"skip_dependencies"`
	MaxParallelJobs  int      `mapstructure:"max_parallel_jobs" yaml:"max_parallel_jobs"`
	TimeoutSeconds   int      `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

type Translation struct {
	MessagesDir string `mapstructure:"messages_dir" yaml:"messages_dir"`
	SourceFile  string `mapstructure:"source_file" yaml:"source_file"`
	BatchSize   int    `mapstructure:"batch_size" yaml:"batch_size"`
}

type Release struct {
	OutputDir         string `mapstructure:"output_dir" yaml:"output_dir"`
	DefaultBranch     string `mapstructure:"default_branch" yaml:"default_branch"`
	CreateGitHub      bool   `mapstructure:"create_github" yaml:"create_github"`
	RunFrameworkTasks bool   `mapstructure:"run_framework_tasks" yaml:"run_framework_tasks"`
}
