package nav

type Rule interface {
	Exec(env map[string]any) (bool, error)
}

type RuleFunc func(env map[string]any) (bool, error)

func (fn RuleFunc) Exec(env map[string]any) (bool, error) {
	return fn(env)
}
