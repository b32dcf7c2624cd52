package cli

const usageTextConstant = `forkbranch prepares a branch of your fork of an upstream repository, ready for a pull request.

It makes sure your fork exists (creating it through the GitHub API when it does not),
clones the fork unless the current directory already is a checkout of it, adds the
upstream repository as a remote, brings the fork's primary branch up to date with
upstream when the fork already existed, and finally switches to the requested branch,
creating it when needed and pushing it with upstream tracking.

Usage:
  forkbranch [flags] <auth> <account> <repository> <branch>

Parameters:
  auth        ssh or https; selects how the fork and upstream remote URLs are built
  account     your GitHub account, which owns the fork
  repository  name of the upstream repository to fork
  branch      branch to create or reuse in your fork

Example:
  forkbranch --upstream acme ssh alice widgets fix-typo

  Forks acme/widgets to alice/widgets if needed, clones git@github.com:alice/widgets.git
  into ./widgets-fix-typo, adds the remote "acme", and leaves you on branch fix-typo.

Notes:
  - Running it again is safe: an existing fork, checkout, remote or branch is reused.
  - A fresh clone lands in <repository>-<branch> under the current directory.
  - The fork is created with curl. Set GH_TOKEN, GITHUB_TOKEN or GITHUB_API_TOKEN to
    authenticate with a token; otherwise curl asks for your password.
  - If scripts/post-clone-setup.sh exists in the checkout, it is run (through sh when it
    is not executable).
  - When upstream's primary branch cannot be merged cleanly the merge is aborted and
    the run stops with instructions for reconciling the fork by hand.

Flags:
  --config FILE            configuration file (default ./config.yaml when present)
  --log-level LEVEL        debug, info, warn or error (default warn)
  --log-format FORMAT      structured or console (default console)
  --upstream OWNER         upstream account or organization (default temirov)
  --primary-branch NAME    primary branch to synchronize (fork.primary_branch)

Configuration:
  Settings are read from the built-in defaults, then the configuration file, then
  FORKBRANCH_ environment variables (for example FORKBRANCH_FORK_UPSTREAM_OWNER), then
  flags. The fork section accepts host, api_host, upstream_owner, upstream_remote,
  origin_remote, primary_branch, setup_script, http_client and documentation_url.
`
