package logfields

import "go.uber.org/zap"

func Repository(val string) zap.Field {
	return zap.String("git.repository", val)
}

func RepositoryOwner(val string) zap.Field {
	return zap.String("github.repository_owner", val)
}

func UpstreamRepository(val string) zap.Field {
	return zap.String("upstream.repository", val)
}

func Branch(val string) zap.Field {
	return zap.String("git.branch", val)
}

func Tag(val string) zap.Field {
	return zap.String("git.tag", val)
}

func Commit(val string) zap.Field {
	return zap.String("git.commit", val)
}

func Version(val string) zap.Field {
	return zap.String("version", val)
}

func CurrentVersion(val string) zap.Field {
	return zap.String("version.current", val)
}
