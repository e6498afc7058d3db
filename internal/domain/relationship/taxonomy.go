package relationship

// Taxonomy assigns canonical skills to a fixed domain cluster.
type Taxonomy map[string]string

const (
	ClusterFrontend = "frontend"
	ClusterBackend  = "backend"
	ClusterData     = "data"
	ClusterDevOps   = "devops"
	ClusterMobile   = "mobile"
	ClusterCloud    = "cloud"
	ClusterML       = "ml"
)

func DefaultTaxonomy() Taxonomy {
	t := Taxonomy{}
	add := func(cluster string, skills ...string) {
		for _, s := range skills {
			t[s] = cluster
		}
	}
	add(ClusterFrontend, "javascript", "typescript", "react", "nextjs", "vue", "angular", "svelte",
		"html", "css", "tailwind", "redux", "sass", "webpack", "vite")
	add(ClusterBackend, "go", "java", "python", "nodejs", "express", "nestjs", "django", "flask",
		"fastapi", "spring", "dotnet", "c#", "php", "laravel", "ruby", "rails", "rust", "c++",
		"rest api", "graphql", "grpc", "microservices", "system design")
	add(ClusterData, "sql", "postgresql", "mysql", "mongodb", "redis", "elasticsearch", "kafka",
		"rabbitmq", "spark", "hadoop", "airflow", "pandas", "numpy", "data analysis", "etl")
	add(ClusterDevOps, "docker", "kubernetes", "terraform", "ansible", "jenkins", "cicd", "linux",
		"git", "prometheus", "grafana", "nginx")
	add(ClusterMobile, "kotlin", "swift", "flutter", "dart", "react native", "android", "ios")
	add(ClusterCloud, "aws", "gcp", "azure", "serverless")
	add(ClusterML, "machine learning", "deep learning", "tensorflow", "pytorch", "scikit learn",
		"nlp", "computer vision")
	return t
}
