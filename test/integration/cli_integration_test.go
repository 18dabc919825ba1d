package integration_test

import (
	"os/exec"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"
)

var _ = Describe("CLI Integration Tests", func() {
	Describe("Version Command", func() {
		It("displays version information", func() {
			command := exec.Command(pathToCLI, "version")
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out).To(gbytes.Say("chronex"))
		})
	})

	Describe("Help Command", func() {
		It("lists the expression subcommands", func() {
			command := exec.Command(pathToCLI, "--help")
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out).To(gbytes.Say("Available Commands"))
			Expect(session.Out).To(gbytes.Say("validate"))
			Expect(session.Out).To(gbytes.Say("next"))
			Expect(session.Out).To(gbytes.Say("timeline"))
			Expect(session.Out).To(gbytes.Say("diff"))
			Expect(session.Out).To(gbytes.Say("stats"))
		})
	})

	Describe("Invalid Command", func() {
		It("rejects an unknown subcommand", func() {
			command := exec.Command(pathToCLI, "nonexistent")
			session, err := gexec.Start(command, GinkgoWriter, GinkgoWriter)
			Expect(err).NotTo(HaveOccurred())

			Eventually(session).Should(gexec.Exit(1))
			Expect(session.Err).To(gbytes.Say("unknown command"))
		})
	})
})
