package execshell

// CommandEventObserver receives lifecycle notifications for commands run by ShellExecutor.
type CommandEventObserver interface {
	// CommandStarted is called before the command runs.
	CommandStarted(command ShellCommand)
	// CommandCompleted is called once the command exits, whatever its exit code.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed is called when the command could not be run at all.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// observerChain fans events out to several observers in registration order.
type observerChain []CommandEventObserver

func newObserverChain(observers []CommandEventObserver) observerChain {
	chain := make(observerChain, 0, len(observers))
	for _, observer := range observers {
		if observer != nil {
			chain = append(chain, observer)
		}
	}
	return chain
}

func (chain observerChain) CommandStarted(command ShellCommand) {
	for _, observer := range chain {
		observer.CommandStarted(command)
	}
}

func (chain observerChain) CommandCompleted(command ShellCommand, result ExecutionResult) {
	for _, observer := range chain {
		observer.CommandCompleted(command, result)
	}
}

func (chain observerChain) CommandExecutionFailed(command ShellCommand, failure error) {
	for _, observer := range chain {
		observer.CommandExecutionFailed(command, failure)
	}
}
