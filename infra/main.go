package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/granaapp/grana-backend/infra/cloudrun"
	"github.com/granaapp/grana-backend/infra/docker"
	"github.com/granaapp/grana-backend/infra/firestore"
	"github.com/granaapp/grana-backend/infra/identity"
	"github.com/granaapp/grana-backend/infra/provider"
	"github.com/granaapp/grana-backend/infra/vertex"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable identity platform to allow firebase sign-in
		ident, err := identity.SetupIdentity(ctx)
		if err != nil {
			return err
		}

		// enable firestore and create the project database
		err = firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// enable vertex for report generation
		err = vertex.SetupVertex(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, ident, repo)
		if err != nil {
			return err
		}

		return nil
	})
}
