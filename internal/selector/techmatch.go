package selector

import (
	"path"
	"regexp"
	"strings"
)

// techFilePattern maps a technology to the path patterns that identify its
// characteristic files. triggers are the query substrings that activate the
// entry; when empty the technology name itself is the trigger.
type techFilePattern struct {
	name     string
	triggers []string
	patterns []*regexp.Regexp
}

func compile(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		res[i] = regexp.MustCompile(e)
	}
	return res
}

// techFilePatterns is evaluated in order against every candidate path.
// Patterns match the lowercased path, unanchored unless written otherwise.
var techFilePatterns = []techFilePattern{
	{name: "react", patterns: compile(`react`, `jsx`, `tsx`, `component`)},
	{name: "vue", patterns: compile(`vue`, `vuex`, `nuxt`)},
	{name: "angular", patterns: compile(`angular`, `ng`)},
	{name: "node", patterns: compile(`node`, `express`, `server\.js`)},
	{name: "python", patterns: compile(`\.py$`, `flask`, `django`, `requirements\.txt`)},
	{name: "django", patterns: compile(`django`, `urls\.py`, `views\.py`, `models\.py`)},
	{name: "flask", patterns: compile(`flask`, `app\.py`, `routes\.py`)},
	{name: "javascript", patterns: compile(`\.js$`, `\.jsx$`)},
	{name: "typescript", patterns: compile(`\.ts$`, `\.tsx$`, `tsconfig`)},
	{name: "groq", patterns: compile(`groq`, `llm`, `ai`)},
	{name: "mistral", patterns: compile(`mistral`, `llm`, `ai`)},
	{name: "llama", patterns: compile(`llama`, `llm`, `ai`)},
	{name: "claude", patterns: compile(`claude`, `anthropic`, `llm`, `ai`)},
	{name: "gpt", patterns: compile(`gpt`, `openai`, `llm`, `ai`)},
	{name: "langchain", patterns: compile(`langchain`, `llm`, `ai`, `rag`)},
	{name: "docker", patterns: compile(`docker`, `dockerfile`, `compose`)},
	{name: "kubernetes", patterns: compile(`k8s`, `kubernetes`, `helm`)},
	{name: "aws", patterns: compile(`aws`, `amazon`, `lambda`, `s3`, `ec2`)},
	{name: "database", patterns: compile(`db`, `database`, `sql`, `mongo`, `postgres`, `\.env`, `config`)},
	{name: "api", patterns: compile(`api`, `rest`, `graphql`, `endpoint`)},
	{name: "auth", patterns: compile(`auth`, `login`, `jwt`, `oauth`)},
	{name: "test", patterns: compile(`test`, `spec`, `jest`, `mocha`, `cypress`)},
	{
		name:     "mongodb",
		triggers: []string{"mongodb", "mongo"},
		patterns: compile(`mongo`, `mongodb`, `nosql`, `database\.php`, `\.env`, `config`),
	},
	{name: "laravel", patterns: compile(`laravel`, `\.env`, `config`, `database\.php`, `composer\.json`)},
	{
		name:     "connect",
		triggers: []string{"connect", "connection", "setup"},
		patterns: compile(`\.env`, `config`, `database`, `connection`, `setup`),
	},
}

// alwaysIncludeConfigs are collected regardless of the query: dependency
// manifests and environment files answer most "how do I configure X"
// questions even when the query never names them.
var alwaysIncludeConfigs = []string{
	".env", ".env.example", "database.php",
	"config/database.php", "config/app.php", "composer.json",
}

// MatchTechnologyFiles returns the candidate paths matching any technology
// named in the query, plus the always-important config files. The result is
// deduplicated and ordered by position in allFiles, so consumers iterating
// it inherit the file list's stable enumeration order.
func MatchTechnologyFiles(query string, allFiles []string) []string {
	lower := strings.ToLower(query)
	matched := make(map[string]struct{})

	for _, tp := range techFilePatterns {
		triggers := tp.triggers
		if len(triggers) == 0 {
			triggers = []string{tp.name}
		}
		active := false
		for _, trig := range triggers {
			if strings.Contains(lower, trig) {
				active = true
				break
			}
		}
		if !active {
			continue
		}

		for _, fp := range allFiles {
			if _, ok := matched[fp]; ok {
				continue
			}
			pathLower := strings.ToLower(fp)
			for _, re := range tp.patterns {
				if re.MatchString(pathLower) {
					matched[fp] = struct{}{}
					break
				}
			}
		}
	}

	for _, fp := range allFiles {
		if _, ok := matched[fp]; ok {
			continue
		}
		base := path.Base(fp)
		for _, cf := range alwaysIncludeConfigs {
			if base == cf || strings.Contains(fp, cf) {
				matched[fp] = struct{}{}
				break
			}
		}
	}

	out := make([]string, 0, len(matched))
	for _, fp := range allFiles {
		if _, ok := matched[fp]; ok {
			out = append(out, fp)
		}
	}
	return out
}
