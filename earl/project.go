package earl

// Project describes the implementation under test. It becomes the subject of the report.
type Project struct {
	ID                  string `koanf:"id"`
	Name                string `koanf:"name"`
	Homepage            string `koanf:"homepage"`
	License             string `koanf:"license"`
	Description         string `koanf:"description"`
	ProgrammingLanguage string `koanf:"language"`
	Creator             string `koanf:"creator"`

	Developer Developer `koanf:"developer"`
}

// Developer is the person or organization asserting the results.
type Developer struct {
	ID       string `koanf:"id"`
	Name     string `koanf:"name"`
	Homepage string `koanf:"homepage"`
}
