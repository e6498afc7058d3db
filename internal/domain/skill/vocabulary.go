package skill

// Entry is one canonical skill and the spellings that resolve to it.
// Canonical ids must already be in normalized form.
type Entry struct {
	Canonical string
	Aliases   []string
}

type Vocabulary struct {
	Entries  []Entry
	Excluded []string
}

// DefaultVocabulary is the built-in skill table. Larger deployments pass
// their own Vocabulary to NewNormalizer.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Entries: []Entry{
			{Canonical: "javascript", Aliases: []string{"js", "ecmascript", "es6", "vanilla js"}},
			{Canonical: "typescript", Aliases: []string{"ts"}},
			{Canonical: "python", Aliases: []string{"py", "python3"}},
			{Canonical: "go", Aliases: []string{"golang", "go lang"}},
			{Canonical: "java", Aliases: []string{"java se", "java ee"}},
			{Canonical: "c++", Aliases: []string{"cpp", "cplusplus"}},
			{Canonical: "c#", Aliases: []string{"csharp", "c sharp"}},
			{Canonical: "rust", Aliases: []string{"rustlang"}},
			{Canonical: "ruby"},
			{Canonical: "php"},
			{Canonical: "kotlin"},
			{Canonical: "swift"},
			{Canonical: "scala"},
			{Canonical: "sql", Aliases: []string{"t-sql", "pl/sql"}},
			{Canonical: "html", Aliases: []string{"html5"}},
			{Canonical: "css", Aliases: []string{"css3"}},
			{Canonical: "sass", Aliases: []string{"scss"}},
			{Canonical: "tailwind", Aliases: []string{"tailwindcss", "tailwind css"}},
			{Canonical: "react", Aliases: []string{"reactjs", "react.js"}},
			{Canonical: "redux", Aliases: []string{"redux toolkit"}},
			{Canonical: "nextjs", Aliases: []string{"next.js", "next js"}},
			{Canonical: "vue", Aliases: []string{"vuejs", "vue.js"}},
			{Canonical: "angular", Aliases: []string{"angularjs", "angular.js"}},
			{Canonical: "svelte", Aliases: []string{"sveltekit"}},
			{Canonical: "nodejs", Aliases: []string{"node", "node.js"}},
			{Canonical: "express", Aliases: []string{"expressjs", "express.js"}},
			{Canonical: "django"},
			{Canonical: "flask"},
			{Canonical: "fastapi", Aliases: []string{"fast api"}},
			{Canonical: "spring", Aliases: []string{"spring boot", "springboot"}},
			{Canonical: "rails", Aliases: []string{"ruby on rails", "ror"}},
			{Canonical: "dotnet", Aliases: []string{".net", "dot net", "asp.net", ".net core"}},
			{Canonical: "graphql"},
			{Canonical: "rest api", Aliases: []string{"rest", "restful", "restful api", "rest apis"}},
			{Canonical: "grpc"},
			{Canonical: "postgresql", Aliases: []string{"postgres", "psql"}},
			{Canonical: "mysql"},
			{Canonical: "mongodb", Aliases: []string{"mongo"}},
			{Canonical: "redis"},
			{Canonical: "elasticsearch", Aliases: []string{"elastic search", "elk"}},
			{Canonical: "kafka", Aliases: []string{"apache kafka"}},
			{Canonical: "rabbitmq", Aliases: []string{"rabbit mq"}},
			{Canonical: "docker", Aliases: []string{"docker compose"}},
			{Canonical: "kubernetes", Aliases: []string{"k8s", "kube"}},
			{Canonical: "terraform"},
			{Canonical: "ansible"},
			{Canonical: "aws", Aliases: []string{"amazon web services"}},
			{Canonical: "gcp", Aliases: []string{"google cloud", "google cloud platform"}},
			{Canonical: "azure", Aliases: []string{"microsoft azure"}},
			{Canonical: "linux", Aliases: []string{"unix"}},
			{Canonical: "git", Aliases: []string{"github", "gitlab"}},
			{Canonical: "cicd", Aliases: []string{"ci/cd", "ci cd", "continuous integration"}},
			{Canonical: "jenkins"},
			{Canonical: "github actions"},
			{Canonical: "machine learning", Aliases: []string{"ml"}},
			{Canonical: "deep learning", Aliases: []string{"dl"}},
			{Canonical: "tensorflow", Aliases: []string{"tf"}},
			{Canonical: "pytorch", Aliases: []string{"torch"}},
			{Canonical: "pandas"},
			{Canonical: "numpy"},
			{Canonical: "scikit learn", Aliases: []string{"sklearn", "scikit-learn"}},
			{Canonical: "spark", Aliases: []string{"apache spark", "pyspark"}},
			{Canonical: "hadoop"},
			{Canonical: "airflow", Aliases: []string{"apache airflow"}},
			{Canonical: "tableau"},
			{Canonical: "power bi", Aliases: []string{"powerbi"}},
			{Canonical: "react native", Aliases: []string{"react-native"}},
			{Canonical: "flutter"},
			{Canonical: "android"},
			{Canonical: "ios"},
			{Canonical: "figma"},
			{Canonical: "microservices", Aliases: []string{"microservice", "micro services"}},
			{Canonical: "system design"},
		},
		Excluded: []string{
			"axios", "eslint", "prettier", "npm", "yarn", "pnpm", "lodash", "underscore",
			"moment", "moment.js", "dayjs", "nodemon", "dotenv", "husky", "babel",
			"material ui", "mui", "chakra ui", "antd", "ant design", "styled components",
		},
	}
}
